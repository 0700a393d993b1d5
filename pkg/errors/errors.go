// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeStoreComponentNotFound Code = "store.component.get.not_found"
	CodeStoreComponentInvalid  Code = "store.component.put.invalid_input"
	CodeStoreDatabaseFailure   Code = "store.database.failure"
	CodeStoreVectorFailure     Code = "store.vector.failure"
	CodeStoreVectorDimMismatch Code = "store.vector.dimension.invalid_value"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeCatalogImportParseInvalid Code = "catalog.import.parse.invalid"
	CodeCatalogImportRowInvalid   Code = "catalog.import.row.invalid_input"
	CodeCatalogExportWriteFailure Code = "catalog.export.write.failure"

	CodeSearchQueryInvalid   Code = "search.query.invalid_input"
	CodeSearchIndexNotLoaded Code = "search.index.unavailable"
	CodeSearchIndexInconsist Code = "search.index.consistency.invalid_value"
	CodeSearchRebuildFailure Code = "search.index.rebuild.failure"
	CodeSearchEmbedFailure   Code = "search.embed.upstream_failure"
	CodeSearchLookupFailure  Code = "search.lookup.failure"

	CodeExplainNotConfigured    Code = "explain.provider.unavailable"
	CodeExplainUpstreamFailure  Code = "explain.provider.upstream_failure"
	CodeExplainResponseEmpty    Code = "explain.response.invalid"
	CodeExplainComponentMissing Code = "explain.component.not_found"

	CodeProviderRequestInvalid  Code = "provider.request.invalid"
	CodeProviderUpstreamFailure Code = "provider.upstream.failure"
	CodeProviderUnknown         Code = "provider.registry.not_found"

	CodeServerRequestInvalid  Code = "server.request.invalid"
	CodeServerEntityNotFound  Code = "server.entity.not_found"
	CodeServerInternalFailure Code = "server.internal.failure"
	CodeServerConfigInvalid   Code = "server.config.invalid"
	CodeServerStartFailure    Code = "server.start.failure"

	CodeCLIServerNotRunning Code = "cli.server.not_running"
	CodeCLIRequestFailure   Code = "cli.request.failure"
	CodeCLIResponseInvalid  Code = "cli.response.invalid"
	CodeCLISetupFailure     Code = "cli.setup.failure"
	CodeCLIInputInvalid     Code = "cli.input.invalid"

	CodeSecretInvalidInput   Code = "secret.invalid_input"
	CodeSecretNotFound       Code = "secret.get.not_found"
	CodeSecretStoreFailure   Code = "secret.store.failure"
	CodeSecretDeleteFailure  Code = "secret.delete.failure"
	CodeSecretListFailure    Code = "secret.list.failure"
	CodeSecretResolveFailure Code = "secret.resolve.failure"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldComponentID(value string) Attr {
	return Field("component_id", value)
}

func FieldQuery(value string) Attr {
	return Field("query", value)
}

// codedError pins the code assigned at the outermost wrap. oops resolves
// Code() to the deepest code in a chain, which would make re-coding a
// wrapped error a no-op.
type codedError struct {
	code Code
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func New(code Code, msg string, fields ...Attr) error {
	return &codedError{code: code, err: oops.Code(code).With(flatten(fields)...).New(msg)}
}

func Errorf(code Code, format string, args ...any) error {
	return &codedError{code: code, err: oops.Code(code).Errorf(format, args...)}
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return &codedError{code: code, err: oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)}
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return &codedError{code: code, err: oops.Code(code).Wrapf(err, format, args...)}
}

// CodeOf returns the code of the outermost coded error in the chain, so the
// code assigned by the last Wrap wins over any code deeper in the cause.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	var coded *codedError
	if stderrors.As(err, &coded) {
		return coded.code
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid" || r == "invalid_input" || r == "invalid_value" || r == "invalid_format"
}

func IsUnavailable(err error) bool {
	return reason(CodeOf(err)) == "unavailable"
}

func IsUpstreamFailure(err error) bool {
	r := reason(CodeOf(err))
	return r == "upstream_failure" || (strings.Contains(string(CodeOf(err)), "upstream") && r == "failure")
}

func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsInvalidInput(err):
		return http.StatusBadRequest
	case IsUnavailable(err):
		return http.StatusServiceUnavailable
	case IsUpstreamFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Join(errs ...error) error {
	joined := stderrors.Join(errs...)
	if joined == nil {
		return nil
	}
	return &codedError{code: CodeServerInternalFailure, err: oops.Code(CodeServerInternalFailure).Wrap(joined)}
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
