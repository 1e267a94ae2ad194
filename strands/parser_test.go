package strands

import "testing"

const sampleBlock = "Strands #125\n“By the yard”\n💡🔵🔵💡\n🔵💡💡🔵\n💡🔵🟡"

func Test_Parse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantNumber int
		wantScore  int
		wantErr    bool
	}{
		{
			name:       "five hints spangram last",
			text:       sampleBlock,
			wantNumber: 125,
			wantScore:  5 + 11,
		},
		{
			name:       "two hints spangram third",
			text:       "Strands #200\n“Clue”\n💡🔵🟡\n💡🔵🔵",
			wantNumber: 200,
			wantScore:  2 + 3,
		},
		{
			name:       "no spangram no hints",
			text:       "Strands #7\n“Clue”\n🔵🔵🔵",
			wantNumber: 7,
			wantScore:  0,
		},
		{
			name:       "no spangram with hints",
			text:       "Strands #7\n“Clue”\n💡🔵🔵💡",
			wantNumber: 7,
			wantScore:  2,
		},
		{
			name:       "perfect game",
			text:       "Strands #300\n“Clue”\n🟡🔵🔵🔵",
			wantNumber: 300,
			wantScore:  1,
		},
		{
			name:       "thousands separator stripped",
			text:       "Strands #1,042\n“Clue”\n🔵🟡🔵",
			wantNumber: 1042,
			wantScore:  2,
		},
		{
			name:       "block embedded in chatter",
			text:       "got it today!\nStrands #55\n“Clue”\n💡🟡🔵\nphew",
			wantNumber: 55,
			wantScore:  1 + 2,
		},
		{
			name:    "no result block",
			text:    "just talking about strands, no score here",
			wantErr: true,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.PuzzleNumber != tt.wantNumber {
				t.Errorf("Parse() PuzzleNumber = %d, want %d", got.PuzzleNumber, tt.wantNumber)
			}
			if got.Score != tt.wantScore {
				t.Errorf("Parse() Score = %d, want %d", got.Score, tt.wantScore)
			}
		})
	}
}

// Reprocessing depends on identical text always producing the same score.
func Test_ParseDeterministic(t *testing.T) {
	first, err := Parse(sampleBlock)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Parse(sampleBlock)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if again != first {
			t.Fatalf("Parse() = %+v, want %+v", again, first)
		}
	}
}

func Test_Recognize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "valid block", text: sampleBlock, want: true},
		{name: "missing glyph lines", text: "Strands #125\n“By the yard”", want: false},
		{name: "missing number", text: "Strands\n“By the yard”\n💡🔵🟡", want: false},
		{name: "plain chatter", text: "anyone playing today?", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := Recognize(tt.text); got != tt.want {
				t.Errorf("Recognize() = %v, want %v", got, tt.want)
			}
		})
	}
}
