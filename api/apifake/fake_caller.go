package apifake

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-member-client/api"
)

var _ api.Caller = (*FakeCaller)(nil)

// Call is one recorded request
type Call struct {
	Route  string
	Params url.Values
}

type response struct {
	data json.RawMessage
	err  error
}

// FakeCaller answers routes with canned data or errors. Unknown routes
// succeed with no data.
type FakeCaller struct {
	responses map[string]response
	calls     []Call
	lock      sync.RWMutex
}

func NewFakeCaller() *FakeCaller {
	return &FakeCaller{
		responses: make(map[string]response),
	}
}

// Respond makes route succeed with data, given as a JSON string.
func (f *FakeCaller) Respond(route, data string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	var raw json.RawMessage
	if data != "" {
		raw = json.RawMessage(data)
	}
	f.responses[route] = response{data: raw}
}

func (f *FakeCaller) Fail(route string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[route] = response{err: err}
}

func (f *FakeCaller) Get(_ context.Context, route string, params url.Values) (json.RawMessage, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, Call{Route: route, Params: params})
	r := f.responses[route]
	return r.data, r.err
}

func (f *FakeCaller) Calls() []Call {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how often route was requested
func (f *FakeCaller) CallCount(route string) int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	n := 0
	for _, c := range f.calls {
		if c.Route == route {
			n++
		}
	}
	return n
}
