package main

import (
	"fmt"
	"io"
	"math"
	"slices"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// render writes st in the configured format.
func render(w io.Writer, format string, st *structpb.Struct) error {
	switch format {
	case "json":
		b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain(st.AsMap())); err != nil {
			return err
		}
		return enc.Close()
	}
	return renderText(w, "", plain(st.AsMap()).(map[string]any))
}

// plain turns the integral float64 values of a Struct back into integers.
func plain(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = plain(e)
		}
	case []any:
		for i, e := range v {
			v[i] = plain(e)
		}
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
	}
	return v
}

func renderText(w io.Writer, indent string, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if nested, ok := fields[k].(map[string]any); ok {
			if _, err := fmt.Fprintf(w, "%s%s:\n", indent, k); err != nil {
				return err
			}
			if err := renderText(w, indent+"  ", nested); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s: %v\n", indent, k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}
