//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/gospives/platform/test/integration/testutil"
)

type talentPage struct {
	Talents []struct {
		FullName string `json:"full_name"`
		Country  string `json:"country"`
		Age      int    `json:"age"`
	} `json:"talents"`
	Total      int `json:"total"`
	Page       int `json:"current_page"`
	TotalPages int `json:"total_pages"`
}

func seedDirectory(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	dob := func(y int) time.Time { return time.Date(y, 3, 15, 0, 0, 0, 0, time.UTC) }

	env.SeedTalent("a@test.com", "Ada Okafor", "Nigeria", "right", "midfielder", dob(2004))
	env.SeedTalent("b@test.com", "Bayo Ade", "Nigeria", "left", "striker", dob(2008))
	env.SeedTalent("c@test.com", "Carlos Mendes", "Brazil", "left", "midfielder", dob(1998))
}

func TestDirectoryFilters(t *testing.T) {
	env := testutil.NewTestEnv(t)
	seedDirectory(t, env)

	t.Run("no filters returns everyone", func(t *testing.T) {
		resp := env.GET("/api/talents", "")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var page talentPage
		testutil.DecodeJSON(t, resp, &page)
		if page.Total != 3 {
			t.Errorf("total: expected 3, got %d", page.Total)
		}
	})

	t.Run("foot filter", func(t *testing.T) {
		resp := env.GET("/api/talents?powerFoot=left", "")
		var page talentPage
		testutil.DecodeJSON(t, resp, &page)
		if page.Total != 2 {
			t.Errorf("total: expected 2, got %d", page.Total)
		}
	})

	t.Run("search is case-insensitive over name, club, country", func(t *testing.T) {
		resp := env.GET("/api/talents?search=niger", "")
		var page talentPage
		testutil.DecodeJSON(t, resp, &page)
		if page.Total != 2 {
			t.Errorf("total: expected 2, got %d", page.Total)
		}
		for _, talent := range page.Talents {
			if talent.Country != "Nigeria" {
				t.Errorf("unexpected match: %+v", talent)
			}
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		resp := env.GET("/api/talents?powerFoot=left&position=midfielder", "")
		var page talentPage
		testutil.DecodeJSON(t, resp, &page)
		if page.Total != 1 || page.Talents[0].FullName != "Carlos Mendes" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("age bucket", func(t *testing.T) {
		resp := env.GET("/api/talents?age=18-24", "")
		var page talentPage
		testutil.DecodeJSON(t, resp, &page)
		if page.Total != 1 || page.Talents[0].FullName != "Ada Okafor" {
			t.Errorf("unexpected page: %+v", page)
		}
	})
}

func TestDirectoryPagination(t *testing.T) {
	env := testutil.NewTestEnv(t)
	dob := time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		email := string(rune('a'+i)) + "page@test.com"
		env.SeedTalent(email, "Player "+string(rune('A'+i)), "Ghana", "right", "winger", dob.AddDate(0, 0, i))
	}

	resp := env.GET("/api/talents?page=2", "")
	var page talentPage
	testutil.DecodeJSON(t, resp, &page)

	if page.Total != 13 || page.TotalPages != 2 || page.Page != 2 {
		t.Fatalf("unexpected page math: %+v", page)
	}
	if len(page.Talents) != 3 {
		t.Errorf("page 2 size: expected 3, got %d", len(page.Talents))
	}
}

func TestPlayerProfile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	seedDirectory(t, env)

	t.Run("found by nickname", func(t *testing.T) {
		resp := env.GET("/api/player/a@test.com", "")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var profile struct {
			FullName string `json:"full_name"`
			Status   string `json:"status"`
		}
		testutil.DecodeJSON(t, resp, &profile)
		if profile.FullName != "Ada Okafor" {
			t.Errorf("unexpected profile: %+v", profile)
		}
	})

	t.Run("unknown nickname", func(t *testing.T) {
		resp := env.GET("/api/player/nobody", "")
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		resp.Body.Close()
	})
}
