package cell

// Kind is the structural type of a cell. Ordinary cells carry opaque payload
// bits; the exotic kinds encode a cut subtree by hash and depth, enabling
// partial disclosure of a larger structure.
type Kind uint8

const (
	KindOrdinary Kind = iota
	KindPrunedBranch
	KindLibraryReference
	KindMerkleProof
	KindMerkleUpdate
)

// Exotic cell payloads start with a one-byte type tag.
const (
	tagPrunedBranch     = 0x01
	tagLibraryReference = 0x02
	tagMerkleProof      = 0x03
	tagMerkleUpdate     = 0x04
)

// IsExotic reports whether the kind is one of the special (non-ordinary) kinds.
func (k Kind) IsExotic() bool { return k != KindOrdinary }

// KindForTag maps an exotic type tag (the first payload byte of an exotic
// cell) to its Kind. ok is false for unknown tags.
func KindForTag(tag byte) (k Kind, ok bool) {
	switch tag {
	case tagPrunedBranch:
		return KindPrunedBranch, true
	case tagLibraryReference:
		return KindLibraryReference, true
	case tagMerkleProof:
		return KindMerkleProof, true
	case tagMerkleUpdate:
		return KindMerkleUpdate, true
	}
	return KindOrdinary, false
}

func (k Kind) String() string {
	switch k {
	case KindOrdinary:
		return "Ordinary"
	case KindPrunedBranch:
		return "PrunedBranch"
	case KindLibraryReference:
		return "LibraryReference"
	case KindMerkleProof:
		return "MerkleProof"
	case KindMerkleUpdate:
		return "MerkleUpdate"
	}
	return "Unknown"
}
