package strands

import (
	"reflect"
	"testing"
)

func Test_Remaining(t *testing.T) {
	tests := []struct {
		name  string
		total []string
		game  []string
		want  []string
	}{
		{
			name:  "one straggler",
			total: []string{"alice", "bob", "carol"},
			game:  []string{"alice", "bob"},
			want:  []string{"carol"},
		},
		{
			name:  "everyone done",
			total: []string{"alice", "bob"},
			game:  []string{"alice", "bob"},
			want:  []string{},
		},
		{
			name:  "nobody played",
			total: []string{"alice", "bob"},
			game:  []string{},
			want:  []string{"alice", "bob"},
		},
		{
			name:  "order preserved",
			total: []string{"carol", "alice", "bob"},
			game:  []string{"alice"},
			want:  []string{"carol", "bob"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(tt.total, tt.game); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Decide(t *testing.T) {
	tests := []struct {
		name      string
		remaining []string
		target    string
		want      Action
	}{
		{
			name:      "all done posts summary",
			remaining: []string{},
			target:    "carol",
			want:      ActionPostSummary,
		},
		{
			name:      "target alone gets nagged",
			remaining: []string{"carol"},
			target:    "carol",
			want:      ActionNagTarget,
		},
		{
			name:      "someone else alone does nothing",
			remaining: []string{"bob"},
			target:    "carol",
			want:      ActionNone,
		},
		{
			name:      "two remaining does nothing",
			remaining: []string{"bob", "carol"},
			target:    "carol",
			want:      ActionNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.remaining, tt.target); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}
