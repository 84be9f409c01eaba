package workflow

import (
	"errors"
	"testing"
)

func statuses(w *Workflow) [3]Status {
	var out [3]Status
	for i, step := range w.Steps() {
		out[i] = step.Status
	}
	return out
}

func TestNewInitialStates(t *testing.T) {
	if got := statuses(New(false)); got != [3]Status{StatusActive, StatusPending, StatusPending} {
		t.Fatalf("fresh workflow = %v", got)
	}
	w := New(true)
	if got := statuses(w); got != [3]Status{StatusDone, StatusPending, StatusPending} {
		t.Fatalf("restored workflow = %v", got)
	}
	if w.Current() != StepMenu {
		t.Fatalf("current = %s, want menu", w.Current())
	}
	step, ok := w.Step(StepSearch)
	if !ok || step.Label != "지도 검색" {
		t.Fatalf("search step = %+v ok=%v", step, ok)
	}
}

func TestHappyPathCycle(t *testing.T) {
	w := New(false)
	w.LocationSet()
	if err := w.MenuStarted(); err != nil {
		t.Fatalf("menu started: %v", err)
	}
	if got := statuses(w); got != [3]Status{StatusDone, StatusActive, StatusPending} {
		t.Fatalf("after start = %v", got)
	}
	if err := w.MenuDrawn("라멘"); err != nil {
		t.Fatalf("menu drawn: %v", err)
	}
	if err := w.SearchReady("링크 준비 완료"); err != nil {
		t.Fatalf("search ready: %v", err)
	}
	if got := statuses(w); got != [3]Status{StatusDone, StatusDone, StatusDone} {
		t.Fatalf("after search = %v", got)
	}
	if step, _ := w.Step(StepSearch); step.Message != "링크 준비 완료" {
		t.Fatalf("search message = %q", step.Message)
	}

	// a second draw restarts from the menu step
	if err := w.MenuStarted(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if got := statuses(w); got != [3]Status{StatusDone, StatusActive, StatusPending} {
		t.Fatalf("after restart = %v", got)
	}

	// replacing the location resets downstream steps
	w.LocationSet()
	if got := statuses(w); got != [3]Status{StatusDone, StatusPending, StatusPending} {
		t.Fatalf("after new location = %v", got)
	}
}

func TestLocationMissingKeepsLaterStepsUntouched(t *testing.T) {
	w := New(false)
	w.LocationMissing("먼저 위치를 입력해 주세요.")
	step, _ := w.Step(StepLocation)
	if step.Status != StatusError || step.Message == "" {
		t.Fatalf("location step = %+v", step)
	}
	if got := statuses(w); got[1] != StatusPending || got[2] != StatusPending {
		t.Fatalf("later steps changed: %v", got)
	}
	if w.Current() != StepLocation {
		t.Fatalf("current = %s", w.Current())
	}
	w.LocationSet()
	if step, _ := w.Step(StepLocation); step.Status != StatusDone || step.Message != "" {
		t.Fatalf("location after recovery = %+v", step)
	}
}

func TestInvalidTransitionsRejected(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*Workflow)
		id    StepID
		to    Status
	}{
		{"search done while menu pending", func(w *Workflow) { w.LocationSet() }, StepSearch, StatusDone},
		{"search active while menu pending", func(w *Workflow) { w.LocationSet() }, StepSearch, StatusActive},
		{"menu active without location", func(*Workflow) {}, StepMenu, StatusActive},
		{"pending straight to done", func(w *Workflow) { w.LocationSet() }, StepMenu, StatusDone},
		{"pending to error", func(w *Workflow) { w.LocationSet() }, StepMenu, StatusError},
		{"done to error", func(w *Workflow) {
			w.LocationSet()
			_ = w.MenuStarted()
			_ = w.MenuDrawn("A")
		}, StepMenu, StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := New(false)
			tc.setup(w)
			before := statuses(w)
			if err := w.Set(tc.id, tc.to, ""); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if statuses(w) != before {
				t.Fatalf("rejected transition mutated state")
			}
		})
	}
}

func TestErrorStepCanBeRetried(t *testing.T) {
	w := New(true)
	if err := w.MenuStarted(); err != nil {
		t.Fatal(err)
	}
	if err := w.MenuDrawn("A"); err != nil {
		t.Fatal(err)
	}
	if err := w.SearchFailed("링크를 만들 수 없습니다"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if err := w.Set(StepSearch, StatusActive, ""); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if err := w.SearchReady("ok"); err != nil {
		t.Fatalf("ready after retry: %v", err)
	}
}

func TestUnknownStep(t *testing.T) {
	w := New(false)
	if err := w.Set("dessert", StatusActive, ""); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := w.Step("dessert"); ok {
		t.Fatalf("unexpected step")
	}
}

func TestLocationClearedRestarts(t *testing.T) {
	w := New(true)
	_ = w.MenuStarted()
	w.LocationCleared()
	if got := statuses(w); got != [3]Status{StatusActive, StatusPending, StatusPending} {
		t.Fatalf("after clear = %v", got)
	}
}

func TestStatusLabels(t *testing.T) {
	want := map[Status]string{StatusPending: "대기", StatusActive: "진행 중", StatusDone: "완료", StatusError: "오류"}
	for status, label := range want {
		if status.Label() != label {
			t.Fatalf("%s label = %s", status, status.Label())
		}
	}
}
