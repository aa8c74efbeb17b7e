package domain

import (
	"reflect"
	"testing"
)

func task(id string, department Department, done bool) Task {
	return Task{ID: id, Description: "task " + id, Department: department, IsCompleted: done}
}

func boardFixture() []Request {
	return []Request{
		{
			ID:           "r1",
			EmployeeName: "Alice Chen",
			Role:         "Senior Frontend Engineer",
			Type:         ProcessOnboarding,
			Checklist: []Task{
				task("t1", DepartmentHR, true),
				task("t2", DepartmentIT, false),
				task("t3", DepartmentAdmin, false),
			},
		},
		{
			ID:           "r2",
			EmployeeName: "Marcus Johnson",
			Role:         "Sales Director",
			Type:         ProcessOffboarding,
			Checklist: []Task{
				task("t4", DepartmentHR, false),
				task("t5", DepartmentAdmin, false),
			},
		},
		{
			ID:           "r3",
			EmployeeName: "Priya Natarajan",
			Role:         "Data Engineer",
			Type:         ProcessOnboarding,
			Checklist: []Task{
				task("t6", DepartmentIT, true),
			},
		},
	}
}

func requestIDs(requests []Request) []string {
	ids := make([]string, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	return ids
}

func TestDeriveStatusIsExhaustive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		checklist []Task
		want      Status
	}{
		{name: "empty", checklist: nil, want: StatusPending},
		{name: "none done", checklist: []Task{task("a", DepartmentHR, false), task("b", DepartmentIT, false)}, want: StatusPending},
		{name: "some done", checklist: []Task{task("a", DepartmentHR, true), task("b", DepartmentIT, false)}, want: StatusInProgress},
		{name: "all done", checklist: []Task{task("a", DepartmentHR, true), task("b", DepartmentIT, true)}, want: StatusCompleted},
		{name: "single done", checklist: []Task{task("a", DepartmentAdmin, true)}, want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.checklist); got != tt.want {
				t.Fatalf("DeriveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatusAgreesWithCountsForAllMasks(t *testing.T) {
	t.Parallel()

	const size = 4
	for mask := 0; mask < 1<<size; mask++ {
		checklist := make([]Task, size)
		done := 0
		for i := range checklist {
			checklist[i] = task(string(rune('a'+i)), Departments[i%len(Departments)], mask&(1<<i) != 0)
			if checklist[i].IsCompleted {
				done++
			}
		}
		got := DeriveStatus(checklist)
		switch {
		case done == size && got != StatusCompleted,
			done == 0 && got != StatusPending,
			done > 0 && done < size && got != StatusInProgress:
			t.Fatalf("mask %04b: status = %s with %d/%d done", mask, got, done, size)
		}
	}
}

func TestCompletionCountsNeverDividesByZero(t *testing.T) {
	t.Parallel()

	progress := CompletionCounts(nil)
	if progress.Total != 0 || progress.Completed != 0 {
		t.Fatalf("progress = %+v, want zero", progress)
	}
	if got := progress.Percent(); got != 0 {
		t.Fatalf("percent = %d, want 0", got)
	}
}

func TestProgressPercentRounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		progress Progress
		want     int
	}{
		{Progress{Completed: 1, Total: 3}, 33},
		{Progress{Completed: 2, Total: 3}, 67},
		{Progress{Completed: 3, Total: 3}, 100},
		{Progress{Completed: 1, Total: 8}, 13},
		{Progress{Completed: 0, Total: 5}, 0},
	}
	for _, tt := range tests {
		if got := tt.progress.Percent(); got != tt.want {
			t.Fatalf("%+v percent = %d, want %d", tt.progress, got, tt.want)
		}
	}
}

func TestFilterForRoleHRIsIdentity(t *testing.T) {
	t.Parallel()

	requests := boardFixture()
	got := FilterForRole(requests, DepartmentHR)
	if !reflect.DeepEqual(got, requests) {
		t.Fatalf("HR filter changed the board: %v", requestIDs(got))
	}
	if len(got) > 0 && &got[0] == &requests[0] {
		t.Fatal("expected a new slice, not the caller's backing array")
	}
}

func TestFilterForRoleDepartments(t *testing.T) {
	t.Parallel()

	requests := boardFixture()
	before := boardFixture()

	tests := []struct {
		role Role
		want []string
	}{
		// r1 has an open IT task, r3 only a completed one: both count.
		{role: DepartmentIT, want: []string{"r1", "r3"}},
		{role: DepartmentAdmin, want: []string{"r1", "r2"}},
	}
	for _, tt := range tests {
		got := requestIDs(FilterForRole(requests, tt.role))
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s sees %v, want %v", tt.role, got, tt.want)
		}
	}
	if !reflect.DeepEqual(requests, before) {
		t.Fatal("filtering mutated its input")
	}
}

func TestFilterForRoleUnknownRoleSeesNothing(t *testing.T) {
	t.Parallel()

	if got := FilterForRole(boardFixture(), Role("CEO")); len(got) != 0 {
		t.Fatalf("unknown role sees %v", requestIDs(got))
	}
}

func TestFilterByTypeAndSearch(t *testing.T) {
	t.Parallel()

	requests := boardFixture()
	tests := []struct {
		name   string
		filter TypeFilter
		search string
		want   []string
	}{
		{name: "all", filter: TypeAll, want: []string{"r1", "r2", "r3"}},
		{name: "onboarding", filter: TypeFilter(ProcessOnboarding), want: []string{"r1", "r3"}},
		{name: "offboarding", filter: TypeFilter(ProcessOffboarding), want: []string{"r2"}},
		{name: "name case-insensitive", filter: TypeAll, search: "chen", want: []string{"r1"}},
		{name: "role substring", filter: TypeAll, search: "ENGINEER", want: []string{"r1", "r3"}},
		{name: "search and type are ANDed", filter: TypeFilter(ProcessOffboarding), search: "engineer", want: []string{}},
		{name: "no match", filter: TypeAll, search: "zzz", want: []string{}},
		{name: "trailing space is kept", filter: TypeAll, search: "alice ", want: []string{}},
		{name: "inner space matches", filter: TypeAll, search: "e c", want: []string{"r1"}},
		{name: "whitespace only is a term", filter: TypeAll, search: "   ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requestIDs(FilterByTypeAndSearch(requests, tt.filter, tt.search))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByTypeAndSearchFoldsUnicode(t *testing.T) {
	t.Parallel()

	requests := []Request{{ID: "r1", EmployeeName: "Jörg STRAUSS", Type: ProcessOnboarding}}
	if got := FilterByTypeAndSearch(requests, TypeAll, "jÖrg"); len(got) != 1 {
		t.Fatal("expected folded match on umlaut name")
	}
	if got := FilterByTypeAndSearch(requests, TypeAll, "strauss"); len(got) != 1 {
		t.Fatal("expected folded match on upper-case surname")
	}
}

func TestVisibleRequestsCombinesFilters(t *testing.T) {
	t.Parallel()

	got := VisibleRequests(boardFixture(), Query{Role: DepartmentIT, Type: TypeFilter(ProcessOnboarding), Search: "data"})
	if ids := requestIDs(got); !reflect.DeepEqual(ids, []string{"r3"}) {
		t.Fatalf("visible = %v, want [r3]", ids)
	}
}

func TestGroupByDepartmentExposesAllGroups(t *testing.T) {
	t.Parallel()

	groups := GroupByDepartment([]Task{
		task("a", DepartmentIT, false),
		task("b", DepartmentHR, true),
		task("c", DepartmentIT, true),
	})
	if groups[0].Department != DepartmentHR || groups[1].Department != DepartmentIT || groups[2].Department != DepartmentAdmin {
		t.Fatalf("group order = %s,%s,%s", groups[0].Department, groups[1].Department, groups[2].Department)
	}
	if got := requestTaskIDs(groups.Get(DepartmentIT).Tasks); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("IT group = %v, want [a c]", got)
	}
	admin := groups.Get(DepartmentAdmin)
	if admin.Tasks == nil || len(admin.Tasks) != 0 {
		t.Fatalf("ADMIN group = %#v, want empty non-nil", admin.Tasks)
	}
	if p := CompletionCounts(admin.Tasks); p.Percent() != 0 {
		t.Fatalf("empty group percent = %d", p.Percent())
	}
}

func requestTaskIDs(tasks []Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestCanModifyMatrix(t *testing.T) {
	t.Parallel()

	for _, department := range Departments {
		if !CanModify(DepartmentHR, department) {
			t.Fatalf("HR must modify %s tasks", department)
		}
	}
	tests := []struct {
		role       Role
		department Department
		want       bool
	}{
		{DepartmentIT, DepartmentIT, true},
		{DepartmentIT, DepartmentHR, false},
		{DepartmentIT, DepartmentAdmin, false},
		{DepartmentAdmin, DepartmentAdmin, true},
		{DepartmentAdmin, DepartmentIT, false},
		{Role(""), DepartmentIT, false},
	}
	for _, tt := range tests {
		if got := CanModify(tt.role, tt.department); got != tt.want {
			t.Fatalf("CanModify(%q, %q) = %v, want %v", tt.role, tt.department, got, tt.want)
		}
	}
}

func TestSummarizeLimitsSectionsToRole(t *testing.T) {
	t.Parallel()

	request := boardFixture()[0]

	hr := Summarize(request, DepartmentHR)
	if len(hr.Departments) != 3 {
		t.Fatalf("HR sections = %d, want 3", len(hr.Departments))
	}
	if hr.Progress.Percent() != 33 {
		t.Fatalf("HR overall percent = %d, want 33", hr.Progress.Percent())
	}
	for _, section := range hr.Departments {
		if !section.Editable {
			t.Fatalf("HR section %s not editable", section.Department)
		}
	}

	it := Summarize(request, DepartmentIT)
	if len(it.Departments) != 1 || it.Departments[0].Department != DepartmentIT {
		t.Fatalf("IT sections = %+v", it.Departments)
	}
	if got := it.Departments[0].Progress; got.Completed != 0 || got.Total != 1 {
		t.Fatalf("IT progress = %+v, want 0/1", got)
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	if role, err := ParseRole(" admin "); err != nil || role != DepartmentAdmin {
		t.Fatalf("ParseRole = %q, %v", role, err)
	}
	if _, err := ParseRole("finance"); err == nil {
		t.Fatal("expected invalid role error")
	}
	if p, err := ParseProcessType("offboarding"); err != nil || p != ProcessOffboarding {
		t.Fatalf("ParseProcessType = %q, %v", p, err)
	}
	if f, err := ParseTypeFilter(""); err != nil || f != TypeAll {
		t.Fatalf("ParseTypeFilter blank = %q, %v", f, err)
	}
	if _, err := ParseTypeFilter("transfer"); err == nil {
		t.Fatal("expected invalid type filter error")
	}
}
