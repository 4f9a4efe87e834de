package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// SkillRecord is one skill discovered in a resume: the assessment question
// generated for it, the candidate's answer (empty until answered), and the
// optional response latency in milliseconds.
type SkillRecord struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	TimeTaken int64  `json:"timeTaken,omitempty"`
}

// Answered reports whether the record holds a non-empty answer after trimming.
func (r *SkillRecord) Answered() bool {
	return strings.TrimSpace(r.Answer) != ""
}

// SkillsState maps skill names to their records, preserving the key order of
// the JSON document it was decoded from. The caller is the only durable store
// of this state; it is replayed on every request, and the "first unanswered"
// tie-break depends on the document order surviving the round trip.
type SkillsState struct {
	names   []string
	records map[string]*SkillRecord
}

func NewSkillsState() *SkillsState {
	return &SkillsState{records: make(map[string]*SkillRecord)}
}

// Add inserts a record under name, or replaces the existing record without
// changing its position.
func (s *SkillsState) Add(name string, rec *SkillRecord) {
	if s.records == nil {
		s.records = make(map[string]*SkillRecord)
	}
	if _, ok := s.records[name]; !ok {
		s.names = append(s.names, name)
	}
	s.records[name] = rec
}

func (s *SkillsState) Get(name string) (*SkillRecord, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

// Names returns the skill names in document order.
func (s *SkillsState) Names() []string {
	return s.names
}

func (s *SkillsState) Len() int {
	return len(s.names)
}

// AnsweredCount returns how many records hold a non-empty trimmed answer.
func (s *SkillsState) AnsweredCount() int {
	count := 0
	for _, name := range s.names {
		if s.records[name].Answered() {
			count++
		}
	}
	return count
}

// FirstUnanswered returns the first record in document order whose trimmed
// answer is empty. The selection is stable: repeated calls on the same state
// return the same record.
func (s *SkillsState) FirstUnanswered() (string, *SkillRecord, bool) {
	for _, name := range s.names {
		rec := s.records[name]
		if !rec.Answered() {
			return name, rec, true
		}
	}
	return "", nil, false
}

// MarshalJSON emits the mapping in document order.
func (s *SkillsState) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.records[name])
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

// UnmarshalJSON decodes an object mapping skill name to record, keeping the
// key order of the document. Anything other than an object mapping is an
// error.
func (s *SkillsState) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("skills state is not valid JSON")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fmt.Errorf("skills state must be a JSON object mapping")
	}

	s.names = nil
	s.records = make(map[string]*SkillRecord)

	var parseErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("skill %q: record must be an object", key.String())
			return false
		}
		rec := &SkillRecord{
			Question:  value.Get("question").String(),
			Answer:    value.Get("answer").String(),
			TimeTaken: value.Get("timeTaken").Int(),
		}
		s.Add(key.String(), rec)
		return true
	})

	return parseErr
}

// SkillAnswer is one answer submission for a named skill.
type SkillAnswer struct {
	SkillName string `json:"skillName"`
	Answer    string `json:"answer"`
	TimeTaken int64  `json:"timeTaken,omitempty"`
}

// FileReference is a handle to a file previously uploaded to the provider,
// letting later calls reference the same content without re-uploading.
type FileReference struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
}
