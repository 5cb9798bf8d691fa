package telephony

import (
	"bytes"
	"encoding/xml"
)

// VoiceResponse is a minimal Twilio Markup Language builder.
// It intentionally avoids any provider SDK dependency.
//
// Only the verbs this flow needs are included: Say, Gather, Hangup.
type VoiceResponse struct {
	verbs []any
}

type twimlDocument struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any    `xml:",any"`
}

type twimlSay struct {
	XMLName xml.Name `xml:"Say"`
	Text    string   `xml:",chardata"`
}

type twimlGather struct {
	XMLName   xml.Name `xml:"Gather"`
	NumDigits int      `xml:"numDigits,attr"`
	Timeout   int      `xml:"timeout,attr"`
	Action    string   `xml:"action,attr"`
	Method    string   `xml:"method,attr"`
	Say       twimlSay
}

type twimlHangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// GatherOptions configures a Gather verb.
type GatherOptions struct {
	NumDigits int
	Timeout   int
	Action    string
}

// Say appends a spoken line.
func (r *VoiceResponse) Say(text string) *VoiceResponse {
	r.verbs = append(r.verbs, twimlSay{Text: text})
	return r
}

// Gather appends a digit-collection prompt speaking text while waiting.
// Digit presses are posted to opts.Action.
func (r *VoiceResponse) Gather(opts GatherOptions, text string) *VoiceResponse {
	r.verbs = append(r.verbs, twimlGather{
		NumDigits: opts.NumDigits,
		Timeout:   opts.Timeout,
		Action:    opts.Action,
		Method:    "POST",
		Say:       twimlSay{Text: text},
	})
	return r
}

// Hangup appends a Hangup verb.
func (r *VoiceResponse) Hangup() *VoiceResponse {
	r.verbs = append(r.verbs, twimlHangup{})
	return r
}

// Render serializes the response to a TwiML document.
func (r *VoiceResponse) Render() (string, error) {
	doc := twimlDocument{Verbs: r.verbs}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
