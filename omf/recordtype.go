// Package omf implements the on-media format (OMF) of pool metadata
// container (MDC) records: the record type tags, the per-release version
// registry that says which record types are legal at which MDC content
// version, and the payload codecs for the individual record kinds.
package omf

// RecordType tags the kind of a single serialized record in an MDC.
// The numeric values are part of the on-media format and must never be
// reused or renumbered.
type RecordType uint8

const (
	// TypeInvalid is the zero value and never appears on media.
	TypeInvalid RecordType = iota
	// TypeObjectCreate records the creation of an object.
	TypeObjectCreate
	// TypeObjectUpdate records an update of object metadata.
	TypeObjectUpdate
	// TypeObjectDelete records the logical deletion of an object.
	TypeObjectDelete
	// TypeObjectIDCheckpoint records the minimum retained object ID.
	TypeObjectIDCheckpoint
	// TypeObjectErase records the physical erase of a deleted object.
	TypeObjectErase
	// TypeMediaClassConfig records the configuration of a media class.
	TypeMediaClassConfig
	// TypeMediaClassSpare records the spare percentage of a media class.
	TypeMediaClassSpare
	// TypeVersion is the MDC content version record. It is always the
	// first record of a container.
	TypeVersion
	// TypePoolConfig records the pool wide configuration.
	TypePoolConfig

	typeMax // keep last
)

var typeNames = map[RecordType]string{
	TypeInvalid:            "invalid",
	TypeObjectCreate:       "object-create",
	TypeObjectUpdate:       "object-update",
	TypeObjectDelete:       "object-delete",
	TypeObjectIDCheckpoint: "object-id-checkpoint",
	TypeObjectErase:        "object-erase",
	TypeMediaClassConfig:   "media-class-config",
	TypeMediaClassSpare:    "media-class-spare",
	TypeVersion:            "version",
	TypePoolConfig:         "pool-config",
}

func (t RecordType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether t is a known record type tag. It does not say
// whether the type is legal at any particular MDC content version, see
// VersionTypes for that.
func (t RecordType) Valid() bool {
	return t > TypeInvalid && t < typeMax
}
