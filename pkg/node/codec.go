package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/lioia/pagerank/pkg/graph"
	"google.golang.org/protobuf/types/known/structpb"
)

var errMalformed = errors.New("malformed message")

// Requests and results travel as google.protobuf.Struct, both on gRPC and
// on the job queue:
//
//	request: {links: {page: [page...]}, damping, samples, walkers, threshold}
//	result:  {id, sampled: {page: rank}, iterated: {page: rank}, sweeps, distance}

// Struct encodes the request; zero parameters are left out so that the
// receiver applies its defaults
func (r Request) Struct() (*structpb.Struct, error) {
	links := make(map[string]any, len(r.Links))
	for page, targets := range r.Links {
		list := make([]any, len(targets))
		for i, t := range targets {
			list[i] = t
		}
		links[page] = list
	}
	fields := map[string]any{"links": links}
	if r.DampingFactor != 0 {
		fields["damping"] = r.DampingFactor
	}
	if r.Samples != 0 {
		fields["samples"] = r.Samples
	}
	if r.Walkers != 0 {
		fields["walkers"] = r.Walkers
	}
	if r.Threshold != 0 {
		fields["threshold"] = r.Threshold
	}
	return structpb.NewStruct(fields)
}

func RequestFromStruct(s *structpb.Struct) (Request, error) {
	fields := s.GetFields()
	links := fields["links"].GetStructValue()
	if links == nil {
		return Request{}, fmt.Errorf("%w: links must be an object", errMalformed)
	}
	req := Request{Links: make(map[string][]string, len(links.GetFields()))}
	var err error
	if req.DampingFactor, err = numberField(fields, "damping"); err != nil {
		return Request{}, err
	}
	if req.Samples, err = intField(fields, "samples"); err != nil {
		return Request{}, err
	}
	if req.Walkers, err = intField(fields, "walkers"); err != nil {
		return Request{}, err
	}
	if req.Threshold, err = numberField(fields, "threshold"); err != nil {
		return Request{}, err
	}
	if err = rejectZeros(req, func(name string) bool { return fields[name] != nil }); err != nil {
		return Request{}, err
	}
	for page, value := range links.GetFields() {
		list := value.GetListValue()
		if list == nil {
			return Request{}, fmt.Errorf("%w: links of %s must be a list", errMalformed, page)
		}
		targets := make([]string, 0, len(list.GetValues()))
		for _, t := range list.GetValues() {
			target, ok := t.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return Request{}, fmt.Errorf("%w: links of %s must be strings", errMalformed, page)
			}
			targets = append(targets, target.StringValue)
		}
		req.Links[page] = targets
	}
	return req, nil
}

// numberField returns 0 when the field is missing
func numberField(fields map[string]*structpb.Value, name string) (float64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, nil
	}
	number, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", errMalformed, name)
	}
	return number.NumberValue, nil
}

func intField(fields map[string]*structpb.Value, name string) (int, error) {
	v, err := numberField(fields, name)
	if err != nil {
		return 0, err
	}
	if math.Trunc(v) != v || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s must be an integer", errMalformed, name)
	}
	return int(v), nil
}

// UnmarshalJSON decodes a JSON request. Integer parameters with a fraction
// are refused by encoding/json.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		Links         map[string][]string `json:"links"`
		DampingFactor *float64            `json:"damping"`
		Samples       *int                `json:"samples"`
		Walkers       *int                `json:"walkers"`
		Threshold     *float64            `json:"threshold"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	req := Request{Links: raw.Links}
	present := map[string]bool{}
	if raw.DampingFactor != nil {
		req.DampingFactor, present["damping"] = *raw.DampingFactor, true
	}
	if raw.Samples != nil {
		req.Samples, present["samples"] = *raw.Samples, true
	}
	if raw.Walkers != nil {
		req.Walkers, present["walkers"] = *raw.Walkers, true
	}
	if raw.Threshold != nil {
		req.Threshold, present["threshold"] = *raw.Threshold, true
	}
	if err := rejectZeros(req, func(name string) bool { return present[name] }); err != nil {
		return err
	}
	*r = req
	return nil
}

func (r Result) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":       r.Id,
		"sampled":  ranksToMap(r.Sampled),
		"iterated": ranksToMap(r.Iterated),
		"sweeps":   r.Sweeps,
		"distance": r.Distance,
	})
}

func ResultFromStruct(s *structpb.Struct) (Result, error) {
	fields := s.GetFields()
	sampled, err := ranksFromValue(fields["sampled"])
	if err != nil {
		return Result{}, err
	}
	iterated, err := ranksFromValue(fields["iterated"])
	if err != nil {
		return Result{}, err
	}
	return Result{
		Id:       fields["id"].GetStringValue(),
		Sampled:  sampled,
		Iterated: iterated,
		Sweeps:   int(fields["sweeps"].GetNumberValue()),
		Distance: fields["distance"].GetNumberValue(),
	}, nil
}

func ranksToMap(ranks graph.Ranks) map[string]any {
	m := make(map[string]any, len(ranks))
	for page, rank := range ranks {
		m[page] = rank
	}
	return m
}

func ranksFromValue(v *structpb.Value) (graph.Ranks, error) {
	s := v.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("%w: ranks must be an object", errMalformed)
	}
	ranks := make(graph.Ranks, len(s.GetFields()))
	for page, rank := range s.GetFields() {
		number, ok := rank.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%w: rank of %s must be a number", errMalformed, page)
		}
		ranks[page] = number.NumberValue
	}
	return ranks, nil
}
