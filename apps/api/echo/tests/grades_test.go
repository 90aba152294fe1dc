package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/subject"
)

func createSubject(t *testing.T, token, name string) subject.Subject {
	t.Helper()
	req, rec := newAuthRequest(http.MethodPost, "/v1/subjects", token, marchallObj(t, map[string]string{"name": name}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("createSubject(): code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var sub subject.Subject
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("createSubject(): %v", err)
	}
	return sub
}

func saveGrade(t *testing.T, token string, body interface{}) (*grade.Entry, int) {
	t.Helper()
	req, rec := newAuthRequest(http.MethodPut, "/v1/grades", token, marchallObj(t, body))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return nil, rec.Code
	}
	var entry grade.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("saveGrade(): %v", err)
	}
	return &entry, rec.Code
}

func Test_gradeApi(t *testing.T) {
	resetStore(t)
	dir := createPrincipal(t, "Directeur", "dir", "dir@test.cd")
	token := principalToken(t, dir)

	std := createStudent(t, token, "Awe Lol", "M-001", "6e", "A")
	fr := createSubject(t, token, "Français")
	math := createSubject(t, token, "Mathématiques")

	entry, code := saveGrade(t, token, map[string]interface{}{
		"student_id": std.ID,
		"subject_id": fr.ID,
		"term":       grade.Term1,
		"scores":     []string{"15", "", "17"},
		"remark":     "Bien",
	})
	if code != http.StatusOK {
		t.Fatalf("saveGrade(): code = %v", code)
	}
	if !entry.Average.Valid || entry.Average.Float64 != 16 {
		t.Errorf("entry average = %v; want 16", entry.Average)
	}

	t.Run("invalid score rejected", func(t *testing.T) {
		_, code := saveGrade(t, token, map[string]interface{}{
			"student_id": std.ID,
			"subject_id": fr.ID,
			"term":       grade.Term1,
			"scores":     []string{"25"},
		})
		if code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", code, http.StatusBadRequest)
		}
	})

	t.Run("invalid term rejected", func(t *testing.T) {
		_, code := saveGrade(t, token, map[string]interface{}{
			"student_id": std.ID,
			"subject_id": fr.ID,
			"term":       "semestre 1",
		})
		if code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", code, http.StatusBadRequest)
		}
	})

	t.Run("saving again replaces the entry", func(t *testing.T) {
		replacement, code := saveGrade(t, token, map[string]interface{}{
			"student_id": std.ID,
			"subject_id": fr.ID,
			"term":       grade.Term1,
			"scores":     []string{"10"},
		})
		if code != http.StatusOK {
			t.Fatalf("code = %v", code)
		}
		if replacement.ID == entry.ID {
			t.Error("replacement kept the old entry ID")
		}
		if replacement.Remark != "" {
			t.Errorf("replacement remark = %q; want empty (wholesale replace)", replacement.Remark)
		}

		req, rec := newAuthRequest(http.MethodGet, "/v1/grades", token)
		app.ServeHTTP(rec, req)
		var entries []grade.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("entries = %d; want 1", len(entries))
		}
	})

	t.Run("triple filter", func(t *testing.T) {
		saveGrade(t, token, map[string]interface{}{
			"student_id": std.ID,
			"subject_id": math.ID,
			"term":       grade.Term1,
			"scores":     []string{"12"},
		})

		v := make(url.Values)
		v.Add("student_id", std.ID)
		v.Add("subject_id", math.ID)
		v.Add("term", grade.Term1)
		req, rec := newAuthRequest(http.MethodGet, "/v1/grades?"+v.Encode(), token)
		app.ServeHTTP(rec, req)

		var entries []grade.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].SubjectID != math.ID {
			t.Errorf("filtered entries = %+v; want the math entry only", entries)
		}
	})

	t.Run("empty save prunes", func(t *testing.T) {
		pruned, code := saveGrade(t, token, map[string]interface{}{
			"student_id": std.ID,
			"subject_id": math.ID,
			"term":       grade.Term1,
			"scores":     []string{"", ""},
		})
		if code != http.StatusOK {
			t.Fatalf("code = %v", code)
		}
		if pruned.ID != "" {
			t.Errorf("pruned entry ID = %q; want empty", pruned.ID)
		}

		req, rec := newAuthRequest(http.MethodGet, "/v1/grades", token)
		app.ServeHTTP(rec, req)
		var entries []grade.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("entries = %d; want 1", len(entries))
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/grades", token)
		app.ServeHTTP(rec, req)
		var entries []grade.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatal(err)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/grades/"+entries[0].ID, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
