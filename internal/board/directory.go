package board

import (
	"strings"
	"time"
	"unicode"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Client is a directory entry. Orders snapshot it at creation; later edits
// to the entry never touch existing orders.
type Client struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code,omitempty" bson:"code,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Client) GetID() uuid.UUID {
	return c.ID
}

func (c *Client) ResourceType() string {
	return "client"
}

func (c *Client) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = apt.GenerateNewID()
	}
}

func (c *Client) BeforeCreate() {
	c.EnsureID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
}

func (c *Client) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}

func NewClient(name, code, address string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingClient
	}
	c := &Client{
		Name:    strings.TrimSpace(name),
		Code:    strings.TrimSpace(code),
		Address: strings.TrimSpace(address),
	}
	c.BeforeCreate()
	return c, nil
}

// SearchScope selects which fields a query matches and how many results
// come back. Directories run into the thousands of entries; the caps bound
// what a station ever has to render.
type SearchScope string

const (
	// ScopeQuick is the intake autocomplete: name only, few results.
	ScopeQuick SearchScope = "quick"
	// ScopeRoute is the route-picker list: name, code and address.
	ScopeRoute SearchScope = "route"
)

const (
	quickLimit        = 8
	routeLimit        = 200
	routeDefaultShown = 60
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes text for matching: diacritics stripped, lowercased,
// trimmed. "Ñandú" and "nandu" compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Search runs normalized substring containment over the directory — no
// fuzzy matching. An empty route-scope query shows the first entries as a
// browsable sample; an empty quick-scope query shows nothing (the intake
// form only suggests once the operator types).
func Search(clients []*Client, query string, scope SearchScope) []*Client {
	limit := quickLimit
	if scope == ScopeRoute {
		limit = routeLimit
	}

	q := Fold(query)
	if q == "" {
		if scope != ScopeRoute {
			return nil
		}
		n := len(clients)
		if n > routeDefaultShown {
			n = routeDefaultShown
		}
		return append([]*Client(nil), clients[:n]...)
	}

	var matches []*Client
	for _, c := range clients {
		if len(matches) == limit {
			break
		}
		var blob string
		if scope == ScopeRoute {
			blob = Fold(c.Name + " " + c.Code + " " + c.Address)
		} else {
			blob = Fold(c.Name)
		}
		if strings.Contains(blob, q) {
			matches = append(matches, c)
		}
	}
	return matches
}
