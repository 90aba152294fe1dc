package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
	emailsvc "github.com/charmakemoussa99-ops/gestion-de-l-cole/services/email"
	exportsvc "github.com/charmakemoussa99-ops/gestion-de-l-cole/services/export"
)

func reportPath(studentID, term, format string) string {
	v := make(url.Values)
	v.Add("term", term)
	path := "/v1/reports/" + studentID
	if format != "" {
		path += "/" + format
	}
	return path + "?" + v.Encode()
}

func Test_reportApi(t *testing.T) {
	resetStore(t)
	dir := createPrincipal(t, "Directeur", "dir", "dir@test.cd")
	token := principalToken(t, dir)

	std1 := createStudent(t, token, "Awe Lol", "M-001", "6e", "A")
	std2 := createStudent(t, token, "King Kin", "M-002", "6e", "A")
	fr := createSubject(t, token, "Français")

	saveGrade(t, token, map[string]interface{}{
		"student_id": std1.ID, "subject_id": fr.ID, "term": grade.Term1, "scores": []string{"15"},
	})
	saveGrade(t, token, map[string]interface{}{
		"student_id": std2.ID, "subject_id": fr.ID, "term": grade.Term1, "scores": []string{"12"},
	})

	t.Run("json card", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, reportPath(std1.ID, grade.Term1, ""), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}

		var card report.Card
		if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
			t.Fatal(err)
		}
		if card.Student.ID != std1.ID || card.Term != grade.Term1 {
			t.Errorf("card for %s/%s; want %s/%s", card.Student.ID, card.Term, std1.ID, grade.Term1)
		}
		if len(card.Rows) != 1 {
			t.Fatalf("rows = %d; want 1", len(card.Rows))
		}
		if card.Rows[0].Rank != "1er" {
			t.Errorf("rank = %q; want 1er", card.Rows[0].Rank)
		}
		if card.Summary.GeneralRank != "1er" {
			t.Errorf("general rank = %q; want 1er", card.Summary.GeneralRank)
		}
	})

	t.Run("invalid term", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, reportPath(std1.ID, "semestre 1", ""), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, reportPath("lol", grade.Term1, ""), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("xlsx download", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, reportPath(std1.ID, grade.Term1, "xlsx"), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, exportsvc.ContentType) {
			t.Errorf("content type = %q; want %q", ct, exportsvc.ContentType)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
			t.Errorf("content disposition = %q; want an .xlsx attachment", cd)
		}
		if rec.Body.Len() == 0 {
			t.Error("empty workbook body")
		}
	})

	t.Run("send requires a guardian email", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, reportPath(std1.ID, grade.Term1, "send"), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("send mails the workbook to the guardian", func(t *testing.T) {
		body := marchallObj(t, map[string]string{
			"name":           "Hero Héro",
			"level":          "6e",
			"division":       "A",
			"guardian_name":  "Papa Héro",
			"guardian_email": "papa@test.cd",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("creating student: code = %v", rec.Code)
		}
		var std struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
			t.Fatal(err)
		}

		before := len(emailsvc.SentMessages)
		req, rec = newAuthRequest(http.MethodPost, reportPath(std.ID, grade.Term1, "send"), token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}

		if len(emailsvc.SentMessages) != before+1 {
			t.Fatalf("sent messages = %d; want %d", len(emailsvc.SentMessages), before+1)
		}
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		if len(msg.To) != 1 || msg.To[0].Address != "papa@test.cd" {
			t.Errorf("message to = %+v; want the guardian", msg.To)
		}
		if len(msg.Attachments) != 1 || !strings.HasSuffix(msg.Attachments[0].Filename, ".xlsx") {
			t.Errorf("attachments = %+v; want one workbook", msg.Attachments)
		}
	})
}
