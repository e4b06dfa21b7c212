package payload

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/seeklab/handlescout/internal/domain"
	"github.com/seeklab/handlescout/internal/domain/search/mode"
)

// RawFields holds the untyped form values a mode reads at submission time.
// Numeric fields stay strings until Build parses them.
type RawFields struct {
	Keyword   string
	Username  string
	MaxLength string
	Length    string
	Count     string
}

// Payload is a validated, mode-tagged search request.
// The field set is fully determined by the mode; nothing else is sent.
type Payload struct {
	searchMode mode.Mode
	keyword    string
	username   string
	maxLength  int
	length     int
	count      int
	platforms  []string
}

// Build validates raw form fields against the mode's rules and produces a payload.
// selection is the platform subset read at submission time; it is only consulted
// for modes that filter by platform.
func Build(m mode.Mode, raw RawFields, selection []string) (Payload, error) {
	switch m {
	case mode.Smart:
		return buildSmart(raw, selection)
	case mode.Matrix:
		return buildMatrix(raw)
	case mode.Domain:
		return buildKeywordOnly(mode.Domain, raw)
	case mode.Random:
		return buildRandom(raw, selection)
	case mode.Forecast:
		return buildKeywordOnly(mode.Forecast, raw)
	default:
		return Payload{}, domain.NewValidation(domain.UnknownMode, "mode")
	}
}

func buildSmart(raw RawFields, selection []string) (Payload, error) {
	keyword := strings.TrimSpace(raw.Keyword)
	if keyword == "" {
		return Payload{}, domain.NewValidation(domain.EmptyField, "keyword")
	}
	maxLength, err := parsePositive("maxLength", raw.MaxLength)
	if err != nil {
		return Payload{}, err
	}
	if len(selection) == 0 {
		return Payload{}, domain.NewValidation(domain.NoPlatformsSelected, "platforms")
	}
	return Payload{
		searchMode: mode.Smart,
		keyword:    keyword,
		maxLength:  maxLength,
		platforms:  copyStrings(selection),
	}, nil
}

func buildMatrix(raw RawFields) (Payload, error) {
	username := strings.TrimSpace(raw.Username)
	if username == "" {
		return Payload{}, domain.NewValidation(domain.EmptyField, "username")
	}
	return Payload{searchMode: mode.Matrix, username: username}, nil
}

func buildKeywordOnly(m mode.Mode, raw RawFields) (Payload, error) {
	keyword := strings.TrimSpace(raw.Keyword)
	if keyword == "" {
		return Payload{}, domain.NewValidation(domain.EmptyField, "keyword")
	}
	return Payload{searchMode: m, keyword: keyword}, nil
}

func buildRandom(raw RawFields, selection []string) (Payload, error) {
	length, err := parsePositive("length", raw.Length)
	if err != nil {
		return Payload{}, err
	}
	count, err := parsePositive("count", raw.Count)
	if err != nil {
		return Payload{}, err
	}
	if len(selection) == 0 {
		return Payload{}, domain.NewValidation(domain.NoPlatformsSelected, "platforms")
	}
	return Payload{
		searchMode: mode.Random,
		length:     length,
		count:      count,
		platforms:  copyStrings(selection),
	}, nil
}

func parsePositive(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, domain.NewValidation(domain.InvalidNumber, field)
	}
	return n, nil
}

// Mode returns the payload's mode tag.
func (p *Payload) Mode() mode.Mode { return p.searchMode }

// Keyword returns the keyword (smart, domain, forecast).
func (p *Payload) Keyword() string { return p.keyword }

// Username returns the username to check everywhere (matrix).
func (p *Payload) Username() string { return p.username }

// MaxLength returns the maximum candidate length (smart).
func (p *Payload) MaxLength() int { return p.maxLength }

// Length returns the generated candidate length (random).
func (p *Payload) Length() int { return p.length }

// Count returns the requested candidate count (random).
func (p *Payload) Count() int { return p.count }

// Platforms returns the platform subset (smart, random). The slice is a copy.
func (p *Payload) Platforms() []string { return copyStrings(p.platforms) }

// Equal reports structural (deep) equality; used for history deduplication.
func (p *Payload) Equal(other *Payload) bool {
	if p.searchMode != other.searchMode ||
		p.keyword != other.keyword ||
		p.username != other.username ||
		p.maxLength != other.maxLength ||
		p.length != other.length ||
		p.count != other.count ||
		len(p.platforms) != len(other.platforms) {
		return false
	}
	for i, v := range p.platforms {
		if other.platforms[i] != v {
			return false
		}
	}
	return true
}

// Raw converts the payload back to form fields for history replay.
func (p *Payload) Raw() RawFields {
	return RawFields{
		Keyword:   p.keyword,
		Username:  p.username,
		MaxLength: itoaNonZero(p.maxLength),
		Length:    itoaNonZero(p.length),
		Count:     itoaNonZero(p.count),
	}
}

type payloadDTO struct {
	Mode      mode.Mode `json:"mode"`
	Keyword   string    `json:"keyword,omitempty"`
	Username  string    `json:"username,omitempty"`
	MaxLength int       `json:"maxLength,omitempty"`
	Length    int       `json:"length,omitempty"`
	Count     int       `json:"count,omitempty"`
	Platforms []string  `json:"platforms,omitempty"`
}

// MarshalJSON serializes the payload for persistence and dispatch.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadDTO{
		Mode:      p.searchMode,
		Keyword:   p.keyword,
		Username:  p.username,
		MaxLength: p.maxLength,
		Length:    p.length,
		Count:     p.count,
		Platforms: p.platforms,
	})
}

// UnmarshalJSON rehydrates a persisted payload, rejecting unknown modes.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var dto payloadDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	if !dto.Mode.IsValid() {
		return fmt.Errorf("unknown payload mode %q", dto.Mode)
	}
	p.searchMode = dto.Mode
	p.keyword = dto.Keyword
	p.username = dto.Username
	p.maxLength = dto.MaxLength
	p.length = dto.Length
	p.count = dto.Count
	p.platforms = dto.Platforms
	return nil
}

func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
