package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/pb33f/harhar"
)

var methods = []string{"GET", "GET", "GET", "POST", "PUT", "DELETE", "PATCH"}

var requestHeaderNames = []string{
	"Accept", "Accept-Encoding", "Accept-Language", "Authorization",
	"Cache-Control", "User-Agent", "X-Request-Id", "X-Trace-Id",
}

var responseHeaderNames = []string{
	"Cache-Control", "Date", "ETag", "Server", "Vary", "X-Request-Id",
	"X-RateLimit-Remaining", "Set-Cookie",
}

// EntryGenerator creates HAR entries from a dictionary and a seeded rng.
type EntryGenerator struct {
	dict *Dictionary
	rng  *rand.Rand
	opts GenerateOptions
}

// NewEntryGenerator creates a new entry generator.
func NewEntryGenerator(dict *Dictionary, rng *rand.Rand, opts GenerateOptions) *EntryGenerator {
	return &EntryGenerator{dict: dict, rng: rng, opts: opts.withDefaults()}
}

// GenerateEntry creates an entry started at start with the given response
// status. A status of 0 produces an entry that never got a response.
func (eg *EntryGenerator) GenerateEntry(start time.Time, status int) harhar.Entry {
	request := eg.generateRequest()
	entry := harhar.Entry{
		Start:   start.Format(time.RFC3339),
		Request: request,
	}

	if status == 0 {
		entry.Time = float64(eg.rng.Intn(50))
		entry.Response = harhar.Response{
			Headers: []harhar.NameValuePair{},
			Cookies: []harhar.Cookie{},
		}
		return entry
	}

	entry.Time = float64(eg.rng.Intn(900)+20) + eg.rng.Float64()
	entry.Response = eg.generateResponse(status)
	entry.ServerIP = fmt.Sprintf("10.%d.%d.%d", eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(254)+1)
	entry.Connection = fmt.Sprintf("%d", eg.rng.Intn(60000)+1024)
	return entry
}

func (eg *EntryGenerator) generateRequest() harhar.Request {
	method := methods[eg.rng.Intn(len(methods))]
	req := harhar.Request{
		Method:      method,
		URL:         eg.generateURL(),
		HTTPVersion: "HTTP/1.1",
		Headers:     eg.generateHeaders(requestHeaderNames, eg.rng.Intn(4)+2),
		QueryParams: []harhar.NameValuePair{},
		Cookies:     eg.generateCookies(eg.rng.Intn(3)),
		HeadersSize: -1,
		BodySize:    0,
	}

	if method != http.MethodGet && method != http.MethodDelete && eg.withBody() {
		content := eg.payload()
		req.Body = harhar.BodyType{MIMEType: "application/json", Content: content}
		req.BodySize = len(content)
		req.Headers = append(req.Headers, harhar.NameValuePair{Name: "Content-Type", Value: "application/json"})
	}
	return req
}

func (eg *EntryGenerator) generateResponse(status int) harhar.Response {
	resp := harhar.Response{
		StatusCode:  status,
		StatusText:  http.StatusText(status),
		HTTPVersion: "HTTP/1.1",
		Headers:     eg.generateHeaders(responseHeaderNames, eg.rng.Intn(4)+2),
		Cookies:     eg.generateCookies(eg.rng.Intn(2)),
		HeadersSize: -1,
	}
	if status >= 300 && status < 400 {
		resp.RedirectURL = eg.generateURL()
	}

	if status != http.StatusNoContent && status != http.StatusNotModified && eg.withBody() {
		content := eg.payload()
		if status >= 400 {
			content = eg.errorPayload(status)
		}
		resp.Body = harhar.BodyResponseType{
			Size:     len(content),
			MIMEType: "application/json",
			Content:  content,
		}
		resp.BodySize = len(content)
		resp.Headers = append(resp.Headers, harhar.NameValuePair{Name: "Content-Type", Value: "application/json"})
	}
	return resp
}

func (eg *EntryGenerator) withBody() bool {
	return eg.rng.Float64() < eg.opts.BodyRate
}

func (eg *EntryGenerator) generateURL() string {
	domain := eg.opts.Domains[eg.rng.Intn(len(eg.opts.Domains))]
	segments := eg.dict.Words(eg.rng.Intn(3)+1, eg.rng)

	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(domain)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(s)
	}
	if eg.rng.Intn(3) == 0 {
		fmt.Fprintf(&b, "/%d", eg.rng.Intn(10000))
	}
	return b.String()
}

// header names are drawn without repetition
func (eg *EntryGenerator) generateHeaders(names []string, count int) []harhar.NameValuePair {
	if count > len(names) {
		count = len(names)
	}
	headers := make([]harhar.NameValuePair, 0, count)
	for _, i := range eg.rng.Perm(len(names))[:count] {
		headers = append(headers, harhar.NameValuePair{
			Name:  names[i],
			Value: eg.headerValue(names[i]),
		})
	}
	return headers
}

func (eg *EntryGenerator) headerValue(name string) string {
	switch name {
	case "Accept":
		return "application/json, text/plain, */*"
	case "Accept-Encoding":
		return "gzip, deflate, br"
	case "Accept-Language":
		return "en-US,en;q=0.9"
	case "Authorization":
		return "Bearer " + eg.token(24)
	case "Cache-Control":
		return "no-cache"
	case "User-Agent":
		return "Mozilla/5.0 (X11; Linux x86_64) hargen/1.0"
	case "Date":
		return "Fri, 01 Mar 2024 12:00:00 GMT"
	case "Server":
		return "nginx"
	case "Vary":
		return "Accept-Encoding"
	case "X-RateLimit-Remaining":
		return fmt.Sprintf("%d", eg.rng.Intn(1000))
	case "Set-Cookie":
		return eg.dict.Word(eg.rng) + "=" + eg.token(12) + "; Path=/; HttpOnly"
	default:
		return eg.token(16)
	}
}

func (eg *EntryGenerator) generateCookies(count int) []harhar.Cookie {
	cookies := make([]harhar.Cookie, count)
	for i := range cookies {
		cookies[i] = harhar.Cookie{
			Name:  eg.dict.Word(eg.rng),
			Value: eg.token(12),
		}
	}
	return cookies
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (eg *EntryGenerator) token(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[eg.rng.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

// payload builds a small flat JSON object of dictionary words
func (eg *EntryGenerator) payload() string {
	n := eg.rng.Intn(4) + 1
	obj := make(map[string]any, n+1)
	obj["id"] = eg.rng.Intn(100000)
	for _, key := range eg.dict.Words(n, eg.rng) {
		obj[key] = eg.dict.Word(eg.rng)
	}
	content, _ := json.Marshal(obj)
	return string(content)
}

func (eg *EntryGenerator) errorPayload(status int) string {
	content, _ := json.Marshal(map[string]any{
		"error":   strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_")),
		"message": strings.Join(eg.dict.Words(4, eg.rng), " "),
		"status":  status,
	})
	return string(content)
}
