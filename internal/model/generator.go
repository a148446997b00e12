package model

import (
	"bytes"
	"encoding/json"
)

// GenerateRequest represents a password generation request.
// Pointer fields distinguish missing (nil -> configured default) from an
// explicit value. A present length is always validated, even when blank.
type GenerateRequest struct {
	Length    *LengthInput `json:"length"`
	Lowercase *bool        `json:"lowercase"`
	Uppercase *bool        `json:"uppercase"`
	Numbers   *bool        `json:"numbers"`
	Symbols   *bool        `json:"symbols"`
	Hash      bool         `json:"hash"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"`
}

// LengthInput holds the raw length as sent by the client. Both 16 and "16"
// are accepted so form-based clients can forward the text field unchanged.
type LengthInput string

func (l *LengthInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LengthInput(s)
		return nil
	}
	// Non-string tokens are kept verbatim and validated later, so 12.5 or
	// true surface as an invalid length rather than a malformed body.
	*l = LengthInput(data)
	return nil
}
