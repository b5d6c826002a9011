package diag

import (
	"sync"
	"testing"

	"datacheck/internal/source"
)

func TestBagCapAndErrors(t *testing.T) {
	bag := NewBag(2)

	if bag.HasErrors() {
		t.Error("empty bag must not report errors")
	}
	if !bag.Add(NewError(CallTooManyArguments, source.Span{}, "one")) {
		t.Error("first add must succeed")
	}
	if !bag.Add(New(SevWarning, CallInfo, source.Span{}, "two")) {
		t.Error("second add must succeed")
	}
	if bag.Add(NewError(CallTooManyArguments, source.Span{}, "three")) {
		t.Error("add past the cap must be dropped")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() {
		t.Error("bag with an error diagnostic must report errors")
	}
}

func TestBagLargeCap(t *testing.T) {
	// Directory runs size the total bag as max-diagnostics times the file
	// count, which can pass 1<<16; the cap must not wrap.
	bag := NewBag(70000)
	if bag.Cap() != 70000 {
		t.Fatalf("Cap = %d, want 70000", bag.Cap())
	}
	if !bag.Add(NewError(CallTooManyArguments, source.Span{}, "still room")) {
		t.Error("add far below the cap must succeed")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(CallMissingRequiredArgument, source.Span{File: 1, Start: 20, End: 21}, "late"))
	bag.Add(NewError(CallTooManyArguments, source.Span{File: 1, Start: 5, End: 6}, "early"))
	bag.Add(NewError(CallUnknownKeywordArgument, source.Span{File: 0, Start: 99, End: 100}, "other file"))

	bag.Sort()
	items := bag.Items()
	if items[0].Message != "other file" || items[1].Message != "early" || items[2].Message != "late" {
		t.Errorf("unexpected order: %q, %q, %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewBag(1000)
	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				bag.Add(NewError(DataDuplicateFieldName, source.Span{}, "dup"))
			}
		}()
	}
	wg.Wait()
	if bag.Len() != 500 {
		t.Errorf("Len = %d, want 500", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	span := source.Span{File: 1, Start: 3, End: 7}
	r.Report(DataDuplicateFieldName, SevError, span, "field bbb redeclared", nil)
	r.Report(DataDuplicateFieldName, SevError, span, "field bbb redeclared", nil)
	r.Report(DataDuplicateFieldName, SevError, span, "field ccc redeclared", nil)

	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, CallDuplicateArgument, source.Span{File: 1}, "bbb bound twice").
		WithNote(source.Span{File: 1, Start: 1, End: 2}, "first bound here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Errorf("notes = %d, want 1", len(bag.Items()[0].Notes))
	}
}
