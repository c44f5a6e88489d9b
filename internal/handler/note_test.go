package handler

import (
	"net/http"
	"testing"
)

func TestNoteHandler_CRUD(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := api.signUp("alice@example.com")
	appID := api.createApplication(token, "Acme")

	noteID := api.createNote(token, appID, "phone screen booked")

	rec := api.do(http.MethodGet, notePath(appID, noteID), token, nil)
	expectStatus(t, rec, http.StatusOK)

	var note struct {
		ID            int64  `json:"id"`
		ApplicationID int64  `json:"applicationId"`
		Content       string `json:"content"`
		CreatedAt     string `json:"createdAt"`
		UpdatedAt     string `json:"updatedAt"`
	}
	decodeBody(t, rec, &note)
	if note.ID != noteID || note.ApplicationID != appID || note.Content != "phone screen booked" {
		t.Errorf("note = %+v", note)
	}
	if note.CreatedAt == "" || note.UpdatedAt == "" {
		t.Errorf("timestamps missing: %+v", note)
	}

	rec = api.do(http.MethodPut, notePath(appID, noteID), token, map[string]string{"content": "screen moved to Friday"})
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &note)
	if note.Content != "screen moved to Friday" {
		t.Errorf("updated content = %q", note.Content)
	}

	rec = api.do(http.MethodDelete, notePath(appID, noteID), token, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = api.do(http.MethodGet, notePath(appID, noteID), token, nil)
	expectStatus(t, rec, http.StatusNotFound)
	if msg := errorMessage(t, rec); msg != "Note not found with id: "+itoa64(noteID) {
		t.Errorf("error = %q", msg)
	}
}

func TestNoteHandler_DoubleScoping(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	alice := api.signUp("alice@example.com")
	bob := api.signUp("bob@example.com")

	aliceApp := api.createApplication(alice, "Acme")
	aliceOther := api.createApplication(alice, "Globex")
	aliceNote := api.createNote(alice, aliceApp, "called recruiter")

	bobApp := api.createApplication(bob, "Initech")

	tests := []struct {
		name    string
		token   string
		method  string
		path    string
		body    any
		wantMsg string
	}{
		{
			name:    "other account, real ids",
			token:   bob,
			method:  http.MethodGet,
			path:    notePath(aliceApp, aliceNote),
			wantMsg: "Application not found with id: " + itoa64(aliceApp),
		},
		{
			name:    "other account lists notes",
			token:   bob,
			method:  http.MethodGet,
			path:    appPath(aliceApp) + "/notes",
			wantMsg: "Application not found with id: " + itoa64(aliceApp),
		},
		{
			name:    "other account adds a note",
			token:   bob,
			method:  http.MethodPost,
			path:    appPath(aliceApp) + "/notes",
			body:    map[string]string{"content": "sneaky"},
			wantMsg: "Application not found with id: " + itoa64(aliceApp),
		},
		{
			name:    "note through own application of the other account",
			token:   bob,
			method:  http.MethodPut,
			path:    notePath(bobApp, aliceNote),
			body:    map[string]string{"content": "overwritten"},
			wantMsg: "Note not found with id: " + itoa64(aliceNote),
		},
		{
			name:    "owner addresses note through a sibling application",
			token:   alice,
			method:  http.MethodGet,
			path:    notePath(aliceOther, aliceNote),
			wantMsg: "Note not found with id: " + itoa64(aliceNote),
		},
		{
			name:    "owner deletes note through a sibling application",
			token:   alice,
			method:  http.MethodDelete,
			path:    notePath(aliceOther, aliceNote),
			wantMsg: "Note not found with id: " + itoa64(aliceNote),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.token, tt.body)
			expectStatus(t, rec, http.StatusNotFound)
			if msg := errorMessage(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}

	rec := api.do(http.MethodGet, notePath(aliceApp, aliceNote), alice, nil)
	expectStatus(t, rec, http.StatusOK)

	var note struct {
		Content string `json:"content"`
	}
	decodeBody(t, rec, &note)
	if note.Content != "called recruiter" {
		t.Errorf("note content = %q after rejected writes", note.Content)
	}
}

func TestNoteHandler_Validation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := api.signUp("alice@example.com")
	appID := api.createApplication(token, "Acme")
	noteID := api.createNote(token, appID, "first")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"create blank", http.MethodPost, appPath(appID) + "/notes", map[string]string{"content": "  \t"}},
		{"create missing", http.MethodPost, appPath(appID) + "/notes", map[string]string{}},
		{"update blank", http.MethodPut, notePath(appID, noteID), map[string]string{"content": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, token, tt.body)
			expectStatus(t, rec, http.StatusBadRequest)

			var fields map[string]string
			decodeBody(t, rec, &fields)
			if fields["content"] != "Content is required" {
				t.Errorf("fields = %v", fields)
			}
		})
	}

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		path := appPath(appID) + "/notes"
		if method == http.MethodPut {
			path = notePath(appID, noteID)
		}

		rec := api.do(method, path, token, map[string]string{"content": "a\x00b"})
		expectStatus(t, rec, http.StatusBadRequest)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		if fields["content"] != "Content must not contain NUL characters" {
			t.Errorf("%s: fields = %v", method, fields)
		}
	}

	rec := api.do(http.MethodGet, appPath(appID)+"/notes/xyz", token, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if msg := errorMessage(t, rec); msg != "Invalid note id" {
		t.Errorf("error = %q", msg)
	}
}

func TestNoteHandler_CascadeOnApplicationDelete(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := api.signUp("alice@example.com")
	appID := api.createApplication(token, "Acme")
	noteID := api.createNote(token, appID, "first")
	api.createNote(token, appID, "second")

	rec := api.do(http.MethodDelete, appPath(appID), token, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = api.do(http.MethodGet, appPath(appID)+"/notes", token, nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = api.do(http.MethodGet, notePath(appID, noteID), token, nil)
	expectStatus(t, rec, http.StatusNotFound)
}
