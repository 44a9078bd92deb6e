package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// LegalKeywords are the terms scored by the legal-document gate. Matching is
// case-insensitive substring containment.
var LegalKeywords = []string{
	"agreement",
	"whereas",
	"party",
	"liability",
	"termination",
	"arbitration",
	"jurisdiction",
	"indemnity",
	"governing law",
	"confidentiality",
}

// DefaultLegalThreshold is the number of distinct keywords a legal document must contain
const DefaultLegalThreshold = 3

// AgreementTypes is the candidate label set for agreement-type classification
var AgreementTypes = []string{
	"rental agreement",
	"lease agreement",
	"loan agreement",
	"banking agreement",
	"education agreement",
	"student agreement",
	"employment agreement",
	"service agreement",
	"partnership agreement",
	"non-disclosure agreement",
	"sales agreement",
}

// ImportantClauses lists the clause names that are extracted, in result order
var ImportantClauses = []string{
	"termination",
	"liability",
	"indemnity",
	"confidentiality",
	"governing law",
	"arbitration",
	"payment",
}

// Document is the source PDF and its extracted text
type Document struct {
	Path string
	Text string
}

// Clause is one extracted clause body keyed by its clause name
type Clause struct {
	Name string
	Text string
}

// ClauseMap holds extracted clauses in ImportantClauses order. A name appears at most once.
type ClauseMap []Clause

// Get returns the body for name.
func (m ClauseMap) Get(name string) (string, bool) {
	for _, c := range m {
		if c.Name == name {
			return c.Text, true
		}
	}
	return "", false
}

// Names returns the clause names in order.
func (m ClauseMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, c := range m {
		names = append(names, c.Name)
	}
	return names
}

// AgreementClassification is the best agreement-type label with its rounded score
type AgreementClassification struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// ClauseResult is the simplified English and Urdu rendition of one clause
type ClauseResult struct {
	Name        string `json:"-"`
	EasyEnglish string `json:"easy_english"`
	EasyUrdu    string `json:"easy_urdu"`
}

// ClauseResults keeps clause results in extraction order and encodes as a JSON
// object keyed by clause name.
type ClauseResults []ClauseResult

// MarshalJSON preserves slice order in the emitted object.
func (r ClauseResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cr := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cr.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cr)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the result for name.
func (r ClauseResults) Get(name string) (ClauseResult, bool) {
	for _, cr := range r {
		if cr.Name == name {
			return cr, true
		}
	}
	return ClauseResult{}, false
}

// AnalysisResult is the terminal artifact of one pipeline run
type AnalysisResult struct {
	Document      string                   `json:"document"`
	AgreementType *AgreementClassification `json:"agreement_type,omitempty"`
	Clauses       ClauseResults            `json:"clauses"`
}

// Stage names a pipeline state
type Stage string

const (
	StageExtractText    Stage = "extract_text"
	StageClassifyLegal  Stage = "classify_legal"
	StageClassifyType   Stage = "classify_type"
	StageExtractClauses Stage = "extract_clauses"
	StageSimplify       Stage = "simplify"
	StageTranslate      Stage = "translate"
	StageAssemble       Stage = "assemble"
)

// EventType represents the type of stream event
type EventType string

const (
	EventStart            EventType = "start"
	EventStage            EventType = "stage"
	EventClauseProcessing EventType = "clause_processing"
	EventClauseComplete   EventType = "clause_complete"
	EventError            EventType = "error"
	EventComplete         EventType = "complete"
)

// StreamEvent represents an event emitted during analysis
type StreamEvent struct {
	Type      EventType   `json:"type"`
	Stage     Stage       `json:"stage,omitempty"`
	Clause    string      `json:"clause,omitempty"`
	Index     int         `json:"index,omitempty"` // 1-based position of Clause
	Total     int         `json:"total,omitempty"` // number of clauses found
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
