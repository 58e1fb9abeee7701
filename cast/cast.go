package cast

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"moviecast/errs"
	"moviecast/movie"
)

var (
	ErrMissingMovieID = errs.Errorf(errs.EINVALID, "Missing movieId parameter")
	ErrInvalidMovieID = errs.Errorf(errs.EINVALID, "Invalid movieId parameter")
)

// Query parameter names.
const (
	ParamMovieID   = "movieId"
	ParamRoleName  = "roleName"
	ParamActorName = "actorName"
	ParamMovie     = "movie"
)

// Attribute names the service reads from a stored cast record.
const (
	AttrMovieID   = "movieId"
	AttrActorName = "actorName"
	AttrRoleName  = "roleName"
)

// Member is a cast record exactly as the store holds it, keyed by
// (movieId, actorName). Responses carry it unchanged.
type Member map[string]interface{}

// MovieID reports the record's movieId when it holds a whole number.
func (m Member) MovieID() (int, bool) {
	return movie.IntAttr(m[AttrMovieID])
}

func (m Member) ActorName() string {
	s, _ := m[AttrActorName].(string)
	return s
}

// RoleName returns the role, or "" when the record has none.
func (m Member) RoleName() string {
	s, _ := m[AttrRoleName].(string)
	return s
}

// Params gives read access to request query parameters. The second return
// value reports whether the key was sent at all.
type Params interface {
	Lookup(key string) (string, bool)
}

// MapParams adapts single-valued parameters, as delivered by API Gateway.
type MapParams map[string]string

func (p MapParams) Lookup(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// URLParams adapts a parsed query string. Only the first value of a key is used.
type URLParams url.Values

func (p URLParams) Lookup(key string) (string, bool) {
	vs, ok := p[key]
	if !ok {
		return "", false
	}
	if len(vs) == 0 {
		return "", true
	}
	return vs[0], true
}

// Query is a validated cast request. RoleName and ActorName are nil when
// the parameter was not sent; an empty prefix is still a filter.
type Query struct {
	MovieID   int
	RoleName  *string
	ActorName *string
	WithMovie bool
}

// ParseQuery validates the request parameters. movieId is required and
// must start with an integer; everything else is optional.
func ParseQuery(p Params) (Query, error) {
	raw, _ := p.Lookup(ParamMovieID)
	if raw == "" {
		return Query{}, ErrMissingMovieID
	}

	movieID, ok := leadingInt(raw)
	if !ok {
		return Query{}, ErrInvalidMovieID
	}

	q := Query{MovieID: movieID}
	if v, ok := p.Lookup(ParamRoleName); ok {
		q.RoleName = &v
	}
	if v, ok := p.Lookup(ParamActorName); ok {
		q.ActorName = &v
	}
	if v, _ := p.Lookup(ParamMovie); v == "true" {
		q.WithMovie = true
	}

	return q, nil
}

// leadingInt reads the integer at the start of s after leading
// whitespace: an optional sign, then decimal digits or 0x-prefixed hex
// digits. Anything after the digits is ignored, so "42abc" and "4.2" read
// as 42 and 4. It fails when no digit follows or the value overflows int.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
		if sign == "+" {
			sign = ""
		}
	}

	base, isDigit := 10, isDecimal
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit, s = 16, isHex, s[2:]
	}

	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(sign+s[:n], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func isDecimal(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

type PlanKind int

const (
	PlanByMovie PlanKind = iota
	PlanByRolePrefix
	PlanByActorPrefix
)

func (k PlanKind) String() string {
	switch k {
	case PlanByRolePrefix:
		return "role_prefix"
	case PlanByActorPrefix:
		return "actor_prefix"
	default:
		return "movie"
	}
}

// Plan is the store query derived from a Query. Prefix is only meaningful
// for the prefix kinds.
type Plan struct {
	Kind    PlanKind
	MovieID int
	Prefix  string
}

// Plan picks the query shape. roleName wins over actorName when both are
// sent; actorName is then ignored.
func (q Query) Plan() Plan {
	switch {
	case q.RoleName != nil:
		return Plan{Kind: PlanByRolePrefix, MovieID: q.MovieID, Prefix: *q.RoleName}
	case q.ActorName != nil:
		return Plan{Kind: PlanByActorPrefix, MovieID: q.MovieID, Prefix: *q.ActorName}
	default:
		return Plan{Kind: PlanByMovie, MovieID: q.MovieID}
	}
}
