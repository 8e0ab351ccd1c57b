// Package schema builds forms from OpenAPI request bodies. Documents are
// loaded with kin-openapi; the request schema of one operation becomes a form
// whose fields follow the schema's properties in alphabetical order.
package schema
