package mapper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{
			name:  "nil input returns nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "empty slice returns empty slice",
			input: []int{},
			want:  []string{},
		},
		{
			name:  "maps all elements",
			input: []int{1, 2, 3},
			want:  []string{"1", "2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapSlice(tt.input, func(i int) string { return fmt.Sprintf("%d", i) })

			if tt.want == nil {
				if got != nil {
					t.Errorf("MapSlice() = %v, want nil", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MapSlice() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MapSlice()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMapSliceWithError(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		mapFunc     func(int) (string, error)
		want        []string
		wantErr     bool
		errContains string
	}{
		{
			name:    "nil input returns nil",
			input:   nil,
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("%d", i), nil },
			want:    nil,
		},
		{
			name:    "empty slice returns empty slice",
			input:   []int{},
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("%d", i), nil },
			want:    []string{},
		},
		{
			name:    "maps all elements successfully",
			input:   []int{1, 2, 3},
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("%d", i), nil },
			want:    []string{"1", "2", "3"},
		},
		{
			name:  "returns first error",
			input: []int{1, 2, 3},
			mapFunc: func(i int) (string, error) {
				if i == 2 {
					return "", errors.New("cannot map two")
				}
				return fmt.Sprintf("%d", i), nil
			},
			wantErr:     true,
			errContains: "cannot map two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSliceWithError(tt.input, tt.mapFunc)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("MapSliceWithError() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("MapSliceWithError() error = %v, want error containing %v", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("MapSliceWithError() unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("MapSliceWithError() = %v, want nil", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MapSliceWithError() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MapSliceWithError()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

type idRecord struct {
	ID   uint
	Name string
}

type mappedRecord struct {
	Name string
}

func TestMapSlicePtrWithID(t *testing.T) {
	getID := func(r *idRecord) uint { return r.ID }

	t.Run("nil input returns nil", func(t *testing.T) {
		got, err := MapSlicePtrWithID(nil, func(r *idRecord) (*mappedRecord, error) {
			return &mappedRecord{Name: r.Name}, nil
		}, getID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("skips nil inputs and nil outputs", func(t *testing.T) {
		input := []*idRecord{
			{ID: 1, Name: "one"},
			nil,
			{ID: 2, Name: "skip"},
			{ID: 3, Name: "three"},
		}
		got, err := MapSlicePtrWithID(input, func(r *idRecord) (*mappedRecord, error) {
			if r.Name == "skip" {
				return nil, nil
			}
			return &mappedRecord{Name: r.Name}, nil
		}, getID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("length = %d, want 2", len(got))
		}
		if got[0].Name != "one" || got[1].Name != "three" {
			t.Errorf("got %v,%v, want one,three", got[0].Name, got[1].Name)
		}
	})

	t.Run("error includes item ID", func(t *testing.T) {
		input := []*idRecord{{ID: 1, Name: "one"}, {ID: 7, Name: "bad"}}
		_, err := MapSlicePtrWithID(input, func(r *idRecord) (*mappedRecord, error) {
			if r.Name == "bad" {
				return nil, errors.New("broken record")
			}
			return &mappedRecord{Name: r.Name}, nil
		}, getID)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "ID 7") {
			t.Errorf("error = %v, want message containing ID 7", err)
		}
		if !strings.Contains(err.Error(), "broken record") {
			t.Errorf("error = %v, want wrapped cause", err)
		}
	})
}
