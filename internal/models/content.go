package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Kind names an admin-editable homepage collection
type Kind string

const (
	KindCasinos   Kind = "casinos"
	KindGames     Kind = "games"
	KindPromos    Kind = "promos"
	KindFeatures  Kind = "features"
	KindSponsored Kind = "sponsored"
	KindSubnav    Kind = "subnav"
)

// Entity is a typed content payload
type Entity interface {
	Validate() error
}

var entityFactories = map[Kind]func() Entity{
	KindCasinos:   func() Entity { return &CasinoItem{} },
	KindGames:     func() Entity { return &GameItem{} },
	KindPromos:    func() Entity { return &PromoSpace{} },
	KindFeatures:  func() Entity { return &FeatureTool{} },
	KindSponsored: func() Entity { return &SponsoredListing{} },
	KindSubnav:    func() Entity { return &SubnavLink{} },
}

// Kinds lists every content kind
func Kinds() []Kind {
	return []Kind{KindCasinos, KindGames, KindPromos, KindFeatures, KindSponsored, KindSubnav}
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	if _, ok := entityFactories[k]; !ok {
		return "", fmt.Errorf("unknown content kind %q", s)
	}
	return k, nil
}

// DecodeEntity decodes and validates a payload for kind
func DecodeEntity(kind Kind, data []byte) (Entity, error) {
	factory, ok := entityFactories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
	e := factory()
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", kind, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ContentItem is one stored row of a content collection
type ContentItem struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Position  int             `json:"position"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CasinoItem is a casino card on the homepage
type CasinoItem struct {
	Name      string   `json:"name"`
	LogoURL   string   `json:"logoUrl"`
	Rating    float64  `json:"rating"`
	Bonus     string   `json:"bonus"`
	Link      string   `json:"link"`
	Features  []string `json:"features,omitempty"`
	Sponsored bool     `json:"sponsored"`
}

func (c *CasinoItem) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return optionalURL("link", c.Link)
}

// GameItem is a featured calculator or chance game
type GameItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
}

func (g *GameItem) Validate() error {
	if err := required("title", g.Title); err != nil {
		return err
	}
	return sitePath("path", g.Path)
}

// PromoSpace is a promo banner slot
type PromoSpace struct {
	Title    string     `json:"title"`
	ImageURL string     `json:"imageUrl"`
	Link     string     `json:"link"`
	Slot     string     `json:"slot"`
	Active   bool       `json:"active"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

func (p *PromoSpace) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := required("slot", p.Slot); err != nil {
		return err
	}
	if p.StartsAt != nil && p.EndsAt != nil && p.EndsAt.Before(*p.StartsAt) {
		return fmt.Errorf("endsAt must not be before startsAt")
	}
	return optionalURL("link", p.Link)
}

// FeatureTool is a highlighted tool tile
type FeatureTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Icon        string `json:"icon,omitempty"`
}

func (f *FeatureTool) Validate() error {
	if err := required("name", f.Name); err != nil {
		return err
	}
	return sitePath("path", f.Path)
}

// SponsoredListing is a paid placement
type SponsoredListing struct {
	Sponsor   string     `json:"sponsor"`
	Headline  string     `json:"headline"`
	Link      string     `json:"link"`
	Placement string     `json:"placement"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (s *SponsoredListing) Validate() error {
	if err := required("sponsor", s.Sponsor); err != nil {
		return err
	}
	if err := required("link", s.Link); err != nil {
		return err
	}
	return optionalURL("link", s.Link)
}

// SubnavLink is a navigation link under the header
type SubnavLink struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	External bool   `json:"external"`
}

func (l *SubnavLink) Validate() error {
	if err := required("label", l.Label); err != nil {
		return err
	}
	if l.External {
		if err := required("path", l.Path); err != nil {
			return err
		}
		return optionalURL("path", l.Path)
	}
	return sitePath("path", l.Path)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func optionalURL(field, v string) error {
	if v == "" {
		return nil
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", field)
	}
	return nil
}

func sitePath(field, v string) error {
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return fmt.Errorf("%s must be a site path starting with /", field)
	}
	return nil
}
