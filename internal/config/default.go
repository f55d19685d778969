package config

import "strings"

// DefaultPipeline returns the standard customer-contact-list cleaning chain
// over the given input and output paths, for runs started without a pipeline
// file. The source kind follows the input extension (.xlsx reads a workbook,
// anything else reads CSV).
//
// The chain: dedupe exact rows, drop the junk column, trim name edges,
// canonicalize phones, split the address into street/state/zip and drop the
// original, map Y/N flags to Yes/No, blank nulls and placeholder tokens,
// drop opted-out rows and rows without a usable phone, then renumber.
func DefaultPipeline(input, output string) Pipeline {
	sourceKind := "csv"
	if strings.HasSuffix(strings.ToLower(input), ".xlsx") {
		sourceKind = "xlsx"
	}
	yesNo := map[string]any{"Y": "Yes", "N": "No"}
	return Pipeline{
		Job: "contact_list",
		Source: Source{
			Kind: sourceKind,
			Path: input,
			Options: Options{
				"has_header": true,
				"trim_space": true,
				"header_map": map[string]any{"CustomerID": "customer_id"},
			},
		},
		Clean: []Step{
			{Kind: "dedupe"},
			{Kind: "drop_columns", Options: Options{"columns": []string{"not_useful_column"}}},
			{Kind: "trim_edges", Options: Options{"columns": []string{"last_name"}}},
			{Kind: "clean_phone", Options: Options{"column": "phone_number"}},
			{Kind: "split_column", Options: Options{
				"column": "address",
				"into":   []string{"street_address", "state", "zip_code"},
			}},
			{Kind: "drop_columns", Options: Options{"columns": []string{"address"}}},
			{Kind: "map_values", Options: Options{"column": "paying_customer", "mapping": yesNo}},
			{Kind: "map_values", Options: Options{"column": "do_not_contact", "mapping": yesNo}},
			{Kind: "fill_null"},
			{Kind: "drop_where", Options: Options{"column": "do_not_contact", "equals": "Yes"}},
			{Kind: "drop_empty", Options: Options{"column": "phone_number"}},
			{Kind: "reindex"},
		},
		Sinks: []Sink{
			{Kind: "csv", Options: Options{"path": output, "include_index": true}},
		},
	}
}
