package config

// schemaJSON is the embedded JSON Schema for weave.config.json.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "contextweave configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "network": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "max_depth": {"type": "integer", "minimum": 1},
        "max_node_size": {"type": "integer", "minimum": 1},
        "max_network_size": {"type": "integer", "minimum": 1},
        "best_effort": {"type": "boolean"}
      }
    },
    "versions": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "error"]}
      }
    },
    "tracing": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "exporter": {"type": "string", "enum": ["stdout", "none"]},
        "service_name": {"type": "string"}
      }
    }
  }
}`
