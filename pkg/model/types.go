package model

import internalmodel "github.com/goliatone/go-buildergen/internal/model"

// SlotKind re-exports the internal SlotKind enumeration.
type SlotKind = internalmodel.SlotKind

const (
	SlotRequired = internalmodel.SlotRequired
	SlotOptional = internalmodel.SlotOptional
	SlotRepeated = internalmodel.SlotRepeated
)

// AccessorKind re-exports the internal AccessorKind enumeration.
type AccessorKind = internalmodel.AccessorKind

const (
	AccessorSet    = internalmodel.AccessorSet
	AccessorAppend = internalmodel.AccessorAppend
)

type Slot = internalmodel.Slot
type ClassifiedField = internalmodel.ClassifiedField
type Accessor = internalmodel.Accessor
type StorageField = internalmodel.StorageField
type BuildStep = internalmodel.BuildStep
type DeclField = internalmodel.DeclField
type BuilderModel = internalmodel.BuilderModel
