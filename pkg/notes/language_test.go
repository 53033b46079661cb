package notes

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"", English, false},
		{"en", English, false},
		{"fr", French, false},
		{"fr_FR.UTF-8", French, false},
		{"FR", French, false},
		{"de", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTablesCoverKindOrder(t *testing.T) {
	for lang := range tables {
		table := TableFor(lang)
		for _, kind := range KindOrder() {
			if _, ok := table.Label(kind); !ok {
				t.Errorf("language %s has no label for %q", lang, kind)
			}
		}
	}
}

func TestKindOrderIsACopy(t *testing.T) {
	order := KindOrder()
	if order[1] != "feat" {
		t.Fatalf("unexpected order %v", order)
	}
	order[1] = "wip"

	if got := KindOrder()[1]; got != "feat" {
		t.Errorf("KindOrder() shares its backing array: got %q", got)
	}
}
