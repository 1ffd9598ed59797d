package catalog

import (
	"testing"
)

func TestDecodePage(t *testing.T) {
	body := []byte(`{
		"count": 1302,
		"next": "https://pokeapi.co/api/v2/pokemon?offset=20&limit=20",
		"results": [
			{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
			{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
		]
	}`)

	page, err := DecodePage(body)
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}
	if page.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", page.Len())
	}
	if page.Items[0].ID != 1 || page.Items[0].Name != "bulbasaur" {
		t.Errorf("Items[0] = %+v, want {1 bulbasaur}", page.Items[0])
	}
	if page.Items[1].ID != 2 || page.Items[1].Name != "ivysaur" {
		t.Errorf("Items[1] = %+v, want {2 ivysaur}", page.Items[1])
	}
}

func TestDecodePage_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"results": [`},
		{"missing results", `{"count": 0}`},
		{"null results", `{"results": null}`},
		{"non numeric url", `{"results": [{"name": "x", "url": "https://pokeapi.co/api/v2/pokemon/abc/"}]}`},
		{"empty url", `{"results": [{"name": "x", "url": ""}]}`},
		{"negative id", `{"results": [{"name": "x", "url": "https://pokeapi.co/api/v2/pokemon/-3/"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePage([]byte(tt.body)); err == nil {
				t.Error("DecodePage() error = nil, want error")
			}
		})
	}
}

func TestDecodePage_EmptyResults(t *testing.T) {
	page, err := DecodePage([]byte(`{"count": 0, "results": []}`))
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}
	if !page.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
}

func TestDecodeItem(t *testing.T) {
	body := []byte(`{
		"id": 25,
		"name": "pikachu",
		"height": 4,
		"sprites": {"front_default": "https://img.example.com/25.png"}
	}`)

	item, err := DecodeItem(body)
	if err != nil {
		t.Fatalf("DecodeItem() error = %v", err)
	}
	if item.ID != 25 || item.Name != "pikachu" || item.Height != 4 {
		t.Errorf("DecodeItem() = %+v", item)
	}
	if item.ImageURL != "https://img.example.com/25.png" {
		t.Errorf("ImageURL = %q", item.ImageURL)
	}
}

func TestDecodeItem_NullImage(t *testing.T) {
	item, err := DecodeItem([]byte(`{"id": 1, "name": "a", "height": 1, "sprites": {"front_default": null}}`))
	if err != nil {
		t.Fatalf("DecodeItem() error = %v", err)
	}
	if item.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", item.ImageURL)
	}
}

func TestDecodeItem_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id": `},
		{"missing sprites", `{"id": 1, "name": "a", "height": 1}`},
		{"wrong type", `{"id": "one", "name": "a", "sprites": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeItem([]byte(tt.body)); err == nil {
				t.Error("DecodeItem() error = nil, want error")
			}
		})
	}
}

func TestParseItemID(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"https://pokeapi.co/api/v2/pokemon/25/", 25, false},
		{"https://pokeapi.co/api/v2/pokemon/25", 25, false},
		{"https://pokeapi.co/api/v2/pokemon/0/", 0, false},
		{"7", 7, false},
		{"https://pokeapi.co/api/v2/pokemon/", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ParseItemID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItemID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseItemID(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}
