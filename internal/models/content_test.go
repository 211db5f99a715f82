package models

import "testing"

func TestDecodeEntity(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		payload string
		wantErr bool
	}{
		{"valid casino", KindCasinos, `{"name":"Lucky","rating":4.5,"link":"https://lucky.example"}`, false},
		{"casino rating too high", KindCasinos, `{"name":"Lucky","rating":7}`, true},
		{"casino relative link", KindCasinos, `{"name":"Lucky","link":"lucky.example"}`, true},
		{"valid game", KindGames, `{"title":"Dice","path":"/games/dice"}`, false},
		{"game without slash", KindGames, `{"title":"Dice","path":"games/dice"}`, true},
		{"promo window reversed", KindPromos, `{"title":"Spring","slot":"hero","startsAt":"2026-05-01T00:00:00Z","endsAt":"2026-04-01T00:00:00Z"}`, true},
		{"valid promo", KindPromos, `{"title":"Spring","slot":"hero"}`, false},
		{"feature missing name", KindFeatures, `{"path":"/tools"}`, true},
		{"sponsored missing link", KindSponsored, `{"sponsor":"Acme"}`, true},
		{"external subnav", KindSubnav, `{"label":"Blog","path":"https://blog.example","external":true}`, false},
		{"internal subnav", KindSubnav, `{"label":"Odds","path":"/odds-converter"}`, false},
		{"protocol relative subnav", KindSubnav, `{"label":"Odds","path":"//evil.example"}`, true},
		{"malformed json", KindGames, `{"title":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntity(tt.kind, []byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeEntity error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		if got, err := ParseKind(string(k)); err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("accounts"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
