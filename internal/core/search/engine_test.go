package search

import (
	"context"
	"errors"
	"math/big"
	"reflect"
	"testing"

	"docCrackerBackend/internal/core/alphabet"
	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/port"
)

type fakeOracle struct {
	match  string
	failAt int // 1-indexed call that returns an error, 0 for never
	onCall func(n int)
	calls  []string
	doc    port.DocumentHandle
}

func (f *fakeOracle) TryUnlock(doc port.DocumentHandle, password string) (bool, error) {
	f.doc = doc
	f.calls = append(f.calls, password)
	if f.onCall != nil {
		f.onCall(len(f.calls))
	}
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return false, errors.New("document unreadable")
	}
	return f.match != "" && password == f.match, nil
}

func TestEngine_Run(t *testing.T) {
	tests := []struct {
		name         string
		list         alphabet.CandidateList
		match        string
		wantStatus   domain.SearchStatus
		wantPassword string
		wantAttempts int64
		wantCalls    int
	}{
		{
			name:         "match on last candidate of a two slot list",
			list:         alphabet.CandidateList{"a", "01"},
			match:        "a1",
			wantStatus:   domain.StatusFound,
			wantPassword: "a1",
			wantAttempts: 2,
			wantCalls:    2,
		},
		{
			name:         "no match exhausts the full product",
			list:         alphabet.CandidateList{"012", "012"},
			wantStatus:   domain.StatusExhausted,
			wantAttempts: 9,
			wantCalls:    9,
		},
		{
			name:         "match stops enumeration immediately",
			list:         alphabet.CandidateList{"abc", "abc"},
			match:        "ba",
			wantStatus:   domain.StatusFound,
			wantPassword: "ba",
			wantAttempts: 4,
			wantCalls:    4,
		},
		{
			name:         "empty alphabet means empty space and no oracle calls",
			list:         alphabet.CandidateList{"abc", "", "012"},
			wantStatus:   domain.StatusExhausted,
			wantAttempts: 0,
			wantCalls:    0,
		},
		{
			name:         "single position single symbol",
			list:         alphabet.CandidateList{'x'},
			match:        "x",
			wantStatus:   domain.StatusFound,
			wantPassword: "x",
			wantAttempts: 1,
			wantCalls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{match: tt.match}
			engine := NewEngine(oracle)

			outcome, err := engine.Run(context.Background(), "doc", tt.list)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if outcome.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", outcome.Status, tt.wantStatus)
			}
			if outcome.Password != tt.wantPassword {
				t.Errorf("Password = %q, want %q", outcome.Password, tt.wantPassword)
			}
			if outcome.Attempts.Int64() != tt.wantAttempts {
				t.Errorf("Attempts = %v, want %v", outcome.Attempts, tt.wantAttempts)
			}
			if len(oracle.calls) != tt.wantCalls {
				t.Errorf("oracle calls = %d, want %d", len(oracle.calls), tt.wantCalls)
			}
		})
	}
}

func TestEngine_EnumerationOrder(t *testing.T) {
	oracle := &fakeOracle{}
	engine := NewEngine(oracle)

	_, err := engine.Run(context.Background(), "doc", alphabet.CandidateList{"ab", "01"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"a0", "a1", "b0", "b1"}
	if !reflect.DeepEqual(oracle.calls, want) {
		t.Errorf("enumeration order = %v, want %v", oracle.calls, want)
	}
}

func TestEngine_DocumentHandlePassthrough(t *testing.T) {
	type handle struct{ path string }
	doc := &handle{path: "secret.pdf"}

	oracle := &fakeOracle{match: "a"}
	engine := NewEngine(oracle)

	if _, err := engine.Run(context.Background(), doc, alphabet.CandidateList{"a"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if oracle.doc != doc {
		t.Errorf("oracle received handle %v, want %v", oracle.doc, doc)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	list := alphabet.CandidateList{
		map[rune]struct{}{'a': {}, 'b': {}, 'c': {}},
		"012",
	}

	first := &fakeOracle{}
	second := &fakeOracle{}
	if _, err := NewEngine(first).Run(context.Background(), "doc", list); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if _, err := NewEngine(second).Run(context.Background(), "doc", list); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if !reflect.DeepEqual(first.calls, second.calls) {
		t.Errorf("re-run visited a different sequence:\n%v\n%v", first.calls, second.calls)
	}
	if len(first.calls) != 9 {
		t.Errorf("visited %d candidates, want 9", len(first.calls))
	}
}

func TestEngine_InvalidAlphabet(t *testing.T) {
	oracle := &fakeOracle{}
	engine := NewEngine(oracle)

	_, err := engine.Run(context.Background(), "doc", alphabet.CandidateList{"ab", 42})
	if !errors.Is(err, domain.ErrInvalidAlphabet) {
		t.Fatalf("Run() error = %v, want ErrInvalidAlphabet", err)
	}
	if len(oracle.calls) != 0 {
		t.Errorf("oracle was called %d times before init failed", len(oracle.calls))
	}
}

func TestEngine_OracleFailure(t *testing.T) {
	oracle := &fakeOracle{failAt: 3}
	engine := NewEngine(oracle)

	_, err := engine.Run(context.Background(), "doc", alphabet.CandidateList{"abc", "abc"})
	if !errors.Is(err, domain.ErrOracleFailure) {
		t.Fatalf("Run() error = %v, want ErrOracleFailure", err)
	}

	var oracleErr *domain.OracleError
	if !errors.As(err, &oracleErr) {
		t.Fatalf("Run() error = %T, want *domain.OracleError", err)
	}
	if oracleErr.Attempts.Int64() != 2 {
		t.Errorf("attempts before abort = %v, want 2", oracleErr.Attempts)
	}
	if len(oracle.calls) != 3 {
		t.Errorf("oracle calls = %d, want 3", len(oracle.calls))
	}
}

func TestEngine_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	oracle := &fakeOracle{
		onCall: func(n int) {
			if n == 3 {
				cancel()
			}
		},
	}
	engine := NewEngine(oracle)

	outcome, err := engine.Run(ctx, "doc", alphabet.CandidateList{"0123456789", "0123456789"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcome.Status != domain.StatusCancelled {
		t.Errorf("Status = %v, want %v", outcome.Status, domain.StatusCancelled)
	}
	if outcome.Attempts.Int64() != 3 {
		t.Errorf("Attempts = %v, want 3", outcome.Attempts)
	}
	if len(oracle.calls) != 3 {
		t.Errorf("oracle calls after cancellation = %d, want 3", len(oracle.calls))
	}
}

func TestEngine_ProgressEvents(t *testing.T) {
	var events []domain.ProgressEvent
	oracle := &fakeOracle{}
	engine := NewEngine(oracle)
	engine.SetSettings(domain.SearchSettings{
		LogInterval: 2,
		OnProgress: func(e domain.ProgressEvent) {
			events = append(events, e)
		},
	})

	outcome, err := engine.Run(context.Background(), "doc", alphabet.CandidateList{"abcde"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Status != domain.StatusExhausted {
		t.Fatalf("Status = %v, want %v", outcome.Status, domain.StatusExhausted)
	}

	// Two interval events (after attempts 2 and 4) plus the final summary.
	if len(events) != 3 {
		t.Fatalf("got %d progress events, want 3", len(events))
	}

	interval := events[0]
	if interval.Attempts.Int64() != 2 {
		t.Errorf("first event attempts = %v, want 2", interval.Attempts)
	}
	if interval.LastPassword != "b" {
		t.Errorf("first event last password = %q, want %q", interval.LastPassword, "b")
	}
	if interval.Percent < 39.9 || interval.Percent > 40.1 {
		t.Errorf("first event percent = %v, want 40", interval.Percent)
	}
	if interval.Final {
		t.Error("interval event marked final")
	}

	final := events[2]
	if !final.Final {
		t.Error("last event not marked final")
	}
	if final.Attempts.Int64() != 5 {
		t.Errorf("final event attempts = %v, want 5", final.Attempts)
	}
	if final.TotalSpace.Int64() != 5 {
		t.Errorf("final event total space = %v, want 5", final.TotalSpace)
	}
}

func TestSpaceSize(t *testing.T) {
	tests := []struct {
		name      string
		alphabets [][]string
		want      string
	}{
		{"empty list", nil, "1"},
		{"single slot", [][]string{{"a", "b", "c"}}, "3"},
		{"product of slots", [][]string{{"a"}, {"0", "1"}}, "2"},
		{"empty slot zeroes the space", [][]string{{"a", "b"}, {}}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpaceSize(tt.alphabets).String(); got != tt.want {
				t.Errorf("SpaceSize() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSpaceSize_BeyondInt64(t *testing.T) {
	// 95 symbols over 10 positions stays exact where int64 math would not
	// for longer passwords; verify against big.Int exponentiation.
	symbols := make([]string, 95)
	for i := range symbols {
		symbols[i] = "x"
	}
	alphabets := make([][]string, 12)
	for i := range alphabets {
		alphabets[i] = symbols
	}

	want := new(big.Int).Exp(big.NewInt(95), big.NewInt(12), nil)
	if got := SpaceSize(alphabets); got.Cmp(want) != 0 {
		t.Errorf("SpaceSize() = %s, want %s", got, want)
	}

	if _, err := Int64Size(new(big.Int).Exp(big.NewInt(2), big.NewInt(70), nil)); !errors.Is(err, domain.ErrSpaceOverflow) {
		t.Errorf("Int64Size() error = %v, want ErrSpaceOverflow", err)
	}
	if n, err := Int64Size(big.NewInt(42)); err != nil || n != 42 {
		t.Errorf("Int64Size(42) = %d, %v", n, err)
	}
}
