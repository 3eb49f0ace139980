// Package generation holds the AI-generation usage-event domain.
//
// Every AI call (lyrics or music) writes one row here, timestamped and
// user-scoped. The monthly AI quota is enforced by counting these rows
// within the current calendar month; there is no separate running counter.
package generation

import (
	"fmt"
	"time"

	"melodia/internal/shared/id"
)

// Generation kinds.
const (
	KindLyrics = "lyrics"
	KindMusic  = "music"
)

var validKinds = map[string]bool{
	KindLyrics: true,
	KindMusic:  true,
}

// Generation is a single AI-generation usage event plus its result pointers.
type Generation struct {
	genID     uint
	sid       string
	userID    uint
	kind      string
	prompt    string
	model     string
	resultURL string
	metadata  map[string]interface{}
	createdAt time.Time
}

// NewGeneration records an AI-generation event for a user.
func NewGeneration(userID uint, kind, prompt, model string) (*Generation, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !validKinds[kind] {
		return nil, fmt.Errorf("invalid generation kind: %s", kind)
	}

	return &Generation{
		sid:       id.MustGenerateWithPrefix(id.PrefixGeneration, id.DefaultLength),
		userID:    userID,
		kind:      kind,
		prompt:    prompt,
		model:     model,
		metadata:  make(map[string]interface{}),
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructGeneration reconstructs a generation event from persistence.
func ReconstructGeneration(genID uint, sid string, userID uint, kind, prompt, model, resultURL string,
	metadata map[string]interface{}, createdAt time.Time) (*Generation, error) {

	if genID == 0 {
		return nil, fmt.Errorf("generation ID cannot be zero")
	}
	if !validKinds[kind] {
		return nil, fmt.Errorf("invalid generation kind: %s", kind)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Generation{
		genID:     genID,
		sid:       sid,
		userID:    userID,
		kind:      kind,
		prompt:    prompt,
		model:     model,
		resultURL: resultURL,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (g *Generation) ID() uint                          { return g.genID }
func (g *Generation) SID() string                       { return g.sid }
func (g *Generation) UserID() uint                      { return g.userID }
func (g *Generation) Kind() string                      { return g.kind }
func (g *Generation) Prompt() string                    { return g.prompt }
func (g *Generation) Model() string                     { return g.model }
func (g *Generation) ResultURL() string                 { return g.resultURL }
func (g *Generation) Metadata() map[string]interface{}  { return g.metadata }
func (g *Generation) CreatedAt() time.Time              { return g.createdAt }

// SetID assigns the persistence ID after creation.
func (g *Generation) SetID(genID uint) error {
	if g.genID != 0 {
		return fmt.Errorf("generation ID already set")
	}
	if genID == 0 {
		return fmt.Errorf("generation ID cannot be zero")
	}
	g.genID = genID
	return nil
}

// SetResult attaches the produced artifact pointer and metadata.
func (g *Generation) SetResult(resultURL string, metadata map[string]interface{}) {
	g.resultURL = resultURL
	if metadata != nil {
		g.metadata = metadata
	}
}
