package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type VoteKind string

const (
	VoteLike      VoteKind = "like"
	VoteUseful    VoteKind = "useful"
	VoteNotUseful VoteKind = "not_useful"
)

var VoteKinds = []VoteKind{VoteLike, VoteUseful, VoteNotUseful}

func ParseVoteKind(s string) (VoteKind, bool) {
	k := VoteKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range VoteKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Vote is one live ledger row; (ReplyID, VoterID) is unique.
type Vote struct {
	ReplyID   string    `json:"reply_id"`
	VoterID   string    `json:"voter_id"`
	Kind      VoteKind  `json:"vote_kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MyVote is a voter's position on one reply: either no vote or exactly one kind.
// The zero value is no vote.
type MyVote struct {
	kind VoteKind
	set  bool
}

func NoVote() MyVote { return MyVote{} }

func SomeVote(k VoteKind) MyVote { return MyVote{kind: k, set: true} }

func (v MyVote) Kind() (VoteKind, bool) { return v.kind, v.set }

func (v MyVote) IsNone() bool { return !v.set }

// VoteMutation is the storage operation a transition requires.
type VoteMutation int

const (
	MutationUpsert VoteMutation = iota
	MutationDelete
)

// Set applies a vote request: repeating the held kind clears the vote,
// anything else replaces it.
func (v MyVote) Set(k VoteKind) (MyVote, VoteMutation) {
	if v.set && v.kind == k {
		return NoVote(), MutationDelete
	}
	return SomeVote(k), MutationUpsert
}

func (v MyVote) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(string(v.kind))
}

func (v *MyVote) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = NoVote()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = SomeVote(VoteKind(s))
	return nil
}

type VoteCounts struct {
	Like      int64 `json:"like"`
	Useful    int64 `json:"useful"`
	NotUseful int64 `json:"not_useful"`
}

func (c *VoteCounts) Add(k VoteKind, n int64) {
	switch k {
	case VoteLike:
		c.Like += n
	case VoteUseful:
		c.Useful += n
	case VoteNotUseful:
		c.NotUseful += n
	}
}

func (c VoteCounts) Total() int64 {
	return c.Like + c.Useful + c.NotUseful
}
