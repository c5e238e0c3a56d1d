package sbase

import (
	"math"
)

// Unset sentinels returned by the typed getters. Both integer families reserve
// the largest signed 32-bit value, the same sentinel generated C++ initializes
// its int and unsigned int members to. A sentinel is never a storable value.
const (
	UnsetInt  = math.MaxInt32
	UnsetUint = math.MaxInt32
)

// UnsetDouble is the value read back from an unset double attribute.
var UnsetDouble = math.NaN()

// AttributeBag is the name-keyed accessor family every layer of an object answers.
// A layer that does not recognize a name hands the call to the layer below it.
type AttributeBag interface {
	GetAttributeBool(name string) (bool, Status)
	GetAttributeInt(name string) (int, Status)
	GetAttributeUint(name string) (uint, Status)
	GetAttributeDouble(name string) (float64, Status)
	GetAttributeString(name string) (string, Status)

	SetAttributeBool(name string, value bool) Status
	SetAttributeInt(name string, value int) Status
	SetAttributeUint(name string, value uint) Status
	SetAttributeDouble(name string, value float64) Status
	SetAttributeString(name string, value string) Status

	IsSetAttribute(name string) bool
	UnsetAttribute(name string) Status
}

// Base carries the attributes every object of the host language has: metaid and
// sboTerm. It is the last layer of every delegation chain.
type Base struct {
	metaID  string
	sboTerm int
	hasSBO  bool
	ns      *Namespaces
	line    int
	column  int
}

func newBase(ns *Namespaces) Base {
	return Base{ns: ns, sboTerm: -1}
}

// Namespaces returns the namespaces the object was created with.
func (b *Base) Namespaces() *Namespaces { return b.ns }

func (b *Base) Level() uint {
	return b.ns.Level()
}
func (b *Base) Version() uint {
	return b.ns.Version()
}

// Line and Column locate the element the object was read from, 0 if built in code.
func (b *Base) Line() int {
	return b.line
}
func (b *Base) Column() int {
	return b.column
}

func (b *Base) MetaID() string {
	return b.metaID
}
func (b *Base) IsSetMetaID() bool {
	return b.metaID != ""
}
func (b *Base) SBOTerm() int {
	return b.sboTerm
}
func (b *Base) IsSetSBOTerm() bool {
	return b.hasSBO
}
func (b *Base) SBOTermID() string {
	if !b.hasSBO {
		return ""
	}
	return FormatSBOTerm(b.sboTerm)
}

// SetMetaID sets metaid; "" unsets it.
func (b *Base) SetMetaID(id string) Status {
	if id == "" {
		b.metaID = ""
		return OperationSuccess
	}
	if !IsValidMetaID(id) {
		return InvalidAttributeValue
	}
	b.metaID = id
	return OperationSuccess
}

// SetSBOTerm sets the term number; a negative value is rejected.
func (b *Base) SetSBOTerm(n int) Status {
	if n < 0 || n > 9999999 {
		return InvalidAttributeValue
	}
	b.sboTerm, b.hasSBO = n, true
	return OperationSuccess
}

func (b *Base) UnsetMetaID() Status {
	b.metaID = ""
	return OperationSuccess
}
func (b *Base) UnsetSBOTerm() Status {
	b.sboTerm, b.hasSBO = -1, false
	return OperationSuccess
}

func (b *Base) GetAttributeBool(name string) (bool, Status) {
	if isCoreAttribute(name) {
		return false, OperationFailed
	}
	return false, UnexpectedAttribute
}

func (b *Base) GetAttributeInt(name string) (int, Status) {
	switch name {
	case "sboTerm":
		return b.sboTerm, OperationSuccess
	case "metaid":
		return UnsetInt, OperationFailed
	}
	return UnsetInt, UnexpectedAttribute
}

func (b *Base) GetAttributeUint(name string) (uint, Status) {
	if isCoreAttribute(name) {
		return UnsetUint, OperationFailed
	}
	return UnsetUint, UnexpectedAttribute
}

func (b *Base) GetAttributeDouble(name string) (float64, Status) {
	if isCoreAttribute(name) {
		return UnsetDouble, OperationFailed
	}
	return UnsetDouble, UnexpectedAttribute
}

func (b *Base) GetAttributeString(name string) (string, Status) {
	switch name {
	case "metaid":
		return b.metaID, OperationSuccess
	case "sboTerm":
		return b.SBOTermID(), OperationSuccess
	}
	return "", UnexpectedAttribute
}

func (b *Base) SetAttributeBool(name string, _ bool) Status {
	if isCoreAttribute(name) {
		return OperationFailed
	}
	return UnexpectedAttribute
}

func (b *Base) SetAttributeInt(name string, value int) Status {
	switch name {
	case "sboTerm":
		return b.SetSBOTerm(value)
	case "metaid":
		return OperationFailed
	}
	return UnexpectedAttribute
}

func (b *Base) SetAttributeUint(name string, _ uint) Status {
	if isCoreAttribute(name) {
		return OperationFailed
	}
	return UnexpectedAttribute
}

func (b *Base) SetAttributeDouble(name string, _ float64) Status {
	if isCoreAttribute(name) {
		return OperationFailed
	}
	return UnexpectedAttribute
}

func (b *Base) SetAttributeString(name string, value string) Status {
	switch name {
	case "metaid":
		return b.SetMetaID(value)
	case "sboTerm":
		if value == "" {
			return b.UnsetSBOTerm()
		}
		n, ok := ParseSBOTerm(value)
		if !ok {
			return InvalidAttributeValue
		}
		return b.SetSBOTerm(n)
	}
	return UnexpectedAttribute
}

func (b *Base) IsSetAttribute(name string) bool {
	switch name {
	case "metaid":
		return b.IsSetMetaID()
	case "sboTerm":
		return b.IsSetSBOTerm()
	}
	return false
}

func (b *Base) UnsetAttribute(name string) Status {
	switch name {
	case "metaid":
		return b.UnsetMetaID()
	case "sboTerm":
		return b.UnsetSBOTerm()
	}
	return UnexpectedAttribute
}

func isCoreAttribute(name string) bool { return name == "metaid" || name == "sboTerm" }
