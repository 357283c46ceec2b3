package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reportSchema guards the automation contract: a report that fails this
// check is never renamed into place.
const reportSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["archivo", "total_paginas", "resumen_validacion", "documentos_detectados", "validaciones", "alertas"],
  "properties": {
    "archivo": {"type": "string", "minLength": 1},
    "total_paginas": {"type": "integer", "minimum": 0},
    "resumen_validacion": {"type": "string", "enum": ["APPROVED", "REJECTED_RED_FLAG", "NEEDS_REVIEW", "INCOMPLETE"]},
    "documentos_detectados": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["paginas", "datos"],
        "properties": {
          "paginas": {"type": "array", "items": {"type": "integer", "minimum": 1}},
          "datos": {"type": "object", "additionalProperties": {"type": "string"}},
          "firma": {
            "type": "object",
            "required": ["presente", "tipo"],
            "properties": {
              "presente": {"type": ["boolean", "null"]},
              "tipo": {"type": "string"},
              "detalle": {"type": "string"}
            }
          }
        }
      }
    },
    "validaciones": {
      "type": "object",
      "required": ["nombre_consistente", "numero_solicitud_consistente", "firmas_completas"],
      "properties": {
        "nombre_consistente": {"type": ["boolean", "null"]},
        "numero_solicitud_consistente": {"type": ["boolean", "null"]},
        "firmas_completas": {"type": ["boolean", "null"]}
      }
    },
    "alertas": {"type": "array", "items": {"type": "string"}}
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("report.json", bytes.NewReader([]byte(reportSchema))); err != nil {
		panic(err)
	}
	return c.MustCompile("report.json")
}

// MarshalJSON renders the report as indented UTF-8 with non-ASCII characters
// preserved literally, after validating it against the schema.
func (r *Report) MarshalIndentedJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	var v any
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		return nil, fmt.Errorf("reparse report: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("report does not match schema: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFiles writes the JSON report and its plaintext mirror. Both land at
// temporary names first and are renamed into place only after both writes
// succeeded, so a reader never observes a partial report. On failure the
// temp files are removed and the final names are left untouched.
func (r *Report) WriteFiles(jsonPath, txtPath string) (err error) {
	tmpJSON := jsonPath + ".tmp"
	tmpTXT := txtPath + ".tmp"
	defer func() {
		if err != nil {
			os.Remove(tmpJSON)
			os.Remove(tmpTXT)
		}
	}()

	data, err := r.MarshalIndentedJSON()
	if err != nil {
		return err
	}
	if err = os.WriteFile(tmpJSON, data, 0o644); err != nil {
		return fmt.Errorf("write temp json: %w", err)
	}
	if err = os.WriteFile(tmpTXT, []byte(r.PlainText()), 0o644); err != nil {
		return fmt.Errorf("write temp txt: %w", err)
	}
	if err = os.Rename(tmpJSON, jsonPath); err != nil {
		return fmt.Errorf("rename json: %w", err)
	}
	if err = os.Rename(tmpTXT, txtPath); err != nil {
		return fmt.Errorf("rename txt: %w", err)
	}
	return nil
}
