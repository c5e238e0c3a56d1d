// Package sbase is the runtime side of a package schema: objects whose attributes,
// children and lists are described by a schema.Version, read from and written to
// XML documents, with parse and validation problems collected in an ErrorLog.
package sbase

import "fmt"

// Status is the result code of accessor and mutator calls.
type Status int

const (
	OperationSuccess      Status = 0
	IndexExceedsSize      Status = -1
	UnexpectedAttribute   Status = -2
	OperationFailed       Status = -3
	InvalidAttributeValue Status = -4
	InvalidObject         Status = -5
	DuplicateObjectID     Status = -6
	LevelMismatch         Status = -7
	VersionMismatch       Status = -8
	InvalidXMLOperation   Status = -9
	NamespacesMismatch    Status = -10
	PkgVersionMismatch    Status = -20
)

var statusNames = map[Status]string{
	OperationSuccess:      "OPERATION_SUCCESS",
	IndexExceedsSize:      "INDEX_EXCEEDS_SIZE",
	UnexpectedAttribute:   "UNEXPECTED_ATTRIBUTE",
	OperationFailed:       "OPERATION_FAILED",
	InvalidAttributeValue: "INVALID_ATTRIBUTE_VALUE",
	InvalidObject:         "INVALID_OBJECT",
	DuplicateObjectID:     "DUPLICATE_OBJECT_ID",
	LevelMismatch:         "LEVEL_MISMATCH",
	VersionMismatch:       "VERSION_MISMATCH",
	InvalidXMLOperation:   "INVALID_XML_OPERATION",
	NamespacesMismatch:    "NAMESPACES_MISMATCH",
	PkgVersionMismatch:    "PKG_VERSION_MISMATCH",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// OK reports whether s is OperationSuccess.
func (s Status) OK() bool { return s == OperationSuccess }

// Statuses lists every status code in declaration order. The C++ generator uses it
// to emit the matching return-code enumeration.
func Statuses() []Status {
	return []Status{
		OperationSuccess, IndexExceedsSize, UnexpectedAttribute, OperationFailed,
		InvalidAttributeValue, InvalidObject, DuplicateObjectID, LevelMismatch,
		VersionMismatch, InvalidXMLOperation, NamespacesMismatch, PkgVersionMismatch,
	}
}
