package session

import (
	"testing"
	"time"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

func TestController_InitialView(t *testing.T) {
	c := NewController(makeDataset(45))
	v := c.View()

	if v.Page != 1 {
		t.Errorf("Expected page 1, got %d", v.Page)
	}
	if v.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", v.TotalPages)
	}
	if len(v.Items) != 20 {
		t.Errorf("Expected 20 items on page 1, got %d", len(v.Items))
	}
	if v.TotalCount != 45 || v.FilteredCount != 45 {
		t.Errorf("Expected 45/45 counts, got %d/%d", v.TotalCount, v.FilteredCount)
	}
	if v.HasPrev || !v.HasNext {
		t.Errorf("Expected HasPrev=false HasNext=true, got %v/%v", v.HasPrev, v.HasNext)
	}
	if !v.ShowPagination {
		t.Error("Expected pagination to be shown for 3 pages")
	}
}

func TestController_FortyFiveCardScenario(t *testing.T) {
	c := NewController(makeDataset(45))

	if !c.GoToPage(3) {
		t.Fatal("Expected page 3 to be accepted")
	}
	v := c.View()
	if len(v.Items) != 5 {
		t.Errorf("Expected 5 items on page 3, got %d", len(v.Items))
	}
	if v.HasNext {
		t.Error("Expected no next page on the last page")
	}

	if c.GoToPage(4) {
		t.Error("Expected page 4 to be rejected")
	}
	if c.Page() != 3 {
		t.Errorf("Expected to stay on page 3, got %d", c.Page())
	}
	if c.GoToPage(0) {
		t.Error("Expected page 0 to be rejected")
	}
	if c.NextPage() {
		t.Error("Expected NextPage on last page to be a no-op")
	}
}

func TestController_PageChangeDoesNotRefilter(t *testing.T) {
	filters := 0
	c := NewController(makeDataset(45), WithFilterHook(func(_ time.Duration) { filters++ }))

	if filters != 1 {
		t.Fatalf("Expected one initial filter pass, got %d", filters)
	}
	c.NextPage()
	c.NextPage()
	c.PrevPage()
	if filters != 1 {
		t.Errorf("Expected page navigation to reuse the filtered sequence, got %d passes", filters)
	}
	if c.Page() != 2 {
		t.Errorf("Expected page 2, got %d", c.Page())
	}
}

func TestController_CriteriaChangeResetsPage(t *testing.T) {
	changes := []func(c *Controller){
		func(c *Controller) { c.SetQuery("card") },
		func(c *Controller) { c.SelectType("Effect Monster") },
		func(c *Controller) { c.SelectRace("Warrior") },
		func(c *Controller) { c.SelectArchetype("") },
		func(c *Controller) { c.ClearQuery() },
		func(c *Controller) { c.SetCriteria(catalog.Criteria{}) },
	}

	for i, change := range changes {
		c := NewController(makeDataset(45))
		c.GoToPage(3)
		change(c)
		if c.Page() != 1 {
			t.Errorf("change %d: expected page reset to 1, got %d", i, c.Page())
		}
	}
}

func TestController_QueryAndAND(t *testing.T) {
	c := NewController(blueEyesDataset())

	v := c.SetQuery("blue")
	if v.FilteredCount != 3 {
		t.Fatalf("Expected 3 matches for 'blue' (name or description), got %d", v.FilteredCount)
	}
	if v.Items[0].Name != "Blue-Eyes White Dragon" {
		t.Errorf("Expected dataset order to be preserved, got %s first", v.Items[0].Name)
	}

	v = c.SelectRace("Spellcaster")
	if v.FilteredCount != 1 || v.Items[0].Name != "Mystical Elf" {
		t.Errorf("Expected only Mystical Elf for 'blue' + Spellcaster, got %d items", v.FilteredCount)
	}
	if got := c.Criteria(); got.Query != "blue" || got.Race != "Spellcaster" {
		t.Errorf("Unexpected criteria: %+v", got)
	}
}

func TestController_NoResults(t *testing.T) {
	c := NewController(blueEyesDataset())
	v := c.SetQuery("does not exist")

	if !v.NoResults {
		t.Error("Expected NoResults for an empty filtered sequence")
	}
	if v.TotalPages != 1 {
		t.Errorf("Expected total pages to floor at 1, got %d", v.TotalPages)
	}
	if v.FilteredCount != 0 || len(v.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(v.Items))
	}
	if v.ShowPagination {
		t.Error("Expected pagination to be hidden")
	}
	if c.GoToPage(2) {
		t.Error("Expected page 2 to be rejected with no results")
	}
	if !c.GoToPage(1) {
		t.Error("Expected page 1 to stay valid with no results")
	}
}

func TestController_QueryIsTrimmed(t *testing.T) {
	c := NewController(blueEyesDataset())
	c.SetQuery("  dark  ")

	if got := c.Criteria().Query; got != "dark" {
		t.Errorf("Expected trimmed query 'dark', got %q", got)
	}
}

func TestController_OnChange(t *testing.T) {
	c := NewController(makeDataset(45))

	var views []View
	c.OnChange(func(v View) { views = append(views, v) })

	c.NextPage()
	c.GoToPage(9) // rejected, no notification
	c.SelectRace("Warrior")

	if len(views) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(views))
	}
	if views[0].Page != 2 || views[1].Page != 1 {
		t.Errorf("Unexpected pages in notifications: %d, %d", views[0].Page, views[1].Page)
	}
}

func TestController_PageSizeOption(t *testing.T) {
	c := NewController(makeDataset(45), WithPageSize(10))
	if c.TotalPages() != 5 {
		t.Errorf("Expected 5 pages of 10, got %d", c.TotalPages())
	}

	c = NewController(makeDataset(45), WithPageSize(0))
	if c.View().PageSize != catalog.DefaultPageSize {
		t.Errorf("Expected default page size for 0, got %d", c.View().PageSize)
	}
}

func TestController_EmptyDataset(t *testing.T) {
	c := NewController(nil)
	v := c.View()

	if v.TotalCount != 0 || !v.NoResults || v.TotalPages != 1 {
		t.Errorf("Unexpected view for empty dataset: %+v", v)
	}
}
