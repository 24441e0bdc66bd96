package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cesiumgo/terrain/propertytable"
)

// propertyDoc is a self-contained, file-based description of one
// structural-metadata property (§3): the schema fields NewView needs
// plus its byte streams inline as base64, since parsing the
// structural-metadata extension's JSON tree is out of propertytable's
// scope by design (it starts from an already-resolved ClassProperty).
type propertyDoc struct {
	Type          string      `json:"type"`
	ComponentType string      `json:"componentType,omitempty"`
	Array         bool        `json:"array,omitempty"`
	Count         int         `json:"count,omitempty"`
	Normalized    bool        `json:"normalized,omitempty"`
	Default       interface{} `json:"default,omitempty"`
	NoData        interface{} `json:"noData,omitempty"`
	Offset        interface{} `json:"offset,omitempty"`
	Scale         interface{} `json:"scale,omitempty"`

	RowCount         int    `json:"rowCount"`
	Values           string `json:"values"`
	ArrayOffsets     string `json:"arrayOffsets,omitempty"`
	ArrayOffsetType  string `json:"arrayOffsetType,omitempty"`
	StringOffsets    string `json:"stringOffsets,omitempty"`
	StringOffsetType string `json:"stringOffsetType,omitempty"`
}

var baseTypeNames = map[string]propertytable.BaseType{
	"SCALAR":  propertytable.BaseScalar,
	"VEC2":    propertytable.BaseVec2,
	"VEC3":    propertytable.BaseVec3,
	"VEC4":    propertytable.BaseVec4,
	"MAT2":    propertytable.BaseMat2,
	"MAT3":    propertytable.BaseMat3,
	"MAT4":    propertytable.BaseMat4,
	"BOOLEAN": propertytable.BaseBoolean,
	"STRING":  propertytable.BaseString,
	"ENUM":    propertytable.BaseEnum,
}

var componentTypeNames = map[string]propertytable.ComponentType{
	"":        propertytable.ComponentNone,
	"INT8":    propertytable.ComponentInt8,
	"UINT8":   propertytable.ComponentUint8,
	"INT16":   propertytable.ComponentInt16,
	"UINT16":  propertytable.ComponentUint16,
	"INT32":   propertytable.ComponentInt32,
	"UINT32":  propertytable.ComponentUint32,
	"INT64":   propertytable.ComponentInt64,
	"UINT64":  propertytable.ComponentUint64,
	"FLOAT32": propertytable.ComponentFloat32,
	"FLOAT64": propertytable.ComponentFloat64,
}

var offsetTypeNames = map[string]propertytable.OffsetType{
	"":       propertytable.OffsetUint32,
	"UINT8":  propertytable.OffsetUint8,
	"UINT16": propertytable.OffsetUint16,
	"UINT32": propertytable.OffsetUint32,
	"UINT64": propertytable.OffsetUint64,
}

func decodeOptionalBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

func (d propertyDoc) build() (*propertytable.ClassProperty, *propertytable.PropertyTableProperty, error) {

	baseType, ok := baseTypeNames[d.Type]
	if !ok {
		return nil, nil, fmt.Errorf("unknown type %q", d.Type)
	}
	componentType, ok := componentTypeNames[d.ComponentType]
	if !ok {
		return nil, nil, fmt.Errorf("unknown componentType %q", d.ComponentType)
	}

	class := &propertytable.ClassProperty{
		Type:          baseType,
		ComponentType: componentType,
		Array:         d.Array,
		Count:         d.Count,
		Normalized:    d.Normalized,
		Default:       d.Default,
		NoData:        d.NoData,
		Offset:        d.Offset,
		Scale:         d.Scale,
	}

	values, err := decodeOptionalBase64(d.Values)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding values: %w", err)
	}
	prop := &propertytable.PropertyTableProperty{Values: values}

	if d.ArrayOffsets != "" {
		arrayOffsets, err := decodeOptionalBase64(d.ArrayOffsets)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding arrayOffsets: %w", err)
		}
		offsetType, ok := offsetTypeNames[d.ArrayOffsetType]
		if !ok {
			return nil, nil, fmt.Errorf("unknown arrayOffsetType %q", d.ArrayOffsetType)
		}
		prop.HasArrayOffsets = true
		prop.ArrayOffsets = arrayOffsets
		prop.ArrayOffsetType = offsetType
	}
	if d.StringOffsets != "" {
		stringOffsets, err := decodeOptionalBase64(d.StringOffsets)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding stringOffsets: %w", err)
		}
		offsetType, ok := offsetTypeNames[d.StringOffsetType]
		if !ok {
			return nil, nil, fmt.Errorf("unknown stringOffsetType %q", d.StringOffsetType)
		}
		prop.HasStringOffsets = true
		prop.StringOffsets = stringOffsets
		prop.StringOffsetType = offsetType
	}

	return class, prop, nil
}

func newPropertiesCmd() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "inspect-properties <property-doc.json>",
		Short: "Decode a structural-metadata property column and print its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			var doc propertyDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			class, prop, err := doc.build()
			if err != nil {
				return fmt.Errorf("building property from %s: %w", args[0], err)
			}

			view := propertytable.NewView(prop, class, doc.RowCount)
			if view.Status() != propertytable.Valid {
				return fmt.Errorf("property view invalid: %s", view.Status())
			}

			rows := make([]interface{}, 0, view.Size())
			propertytable.ForEachRaw(view, func(i int, raw interface{}) {
				rows = append(rows, raw)
			})

			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}
