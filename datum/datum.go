package datum

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the Datum message. They follow the layout used by Caffe
// so that stores written here can be read by existing consumers.
const (
	fieldChannels protowire.Number = 1
	fieldHeight   protowire.Number = 2
	fieldWidth    protowire.Number = 3
	fieldData     protowire.Number = 4
	fieldLabel    protowire.Number = 5
	fieldEncoded  protowire.Number = 7
)

// Datum is a packed multi-channel record in planar layout:
// the sample of channel c, row h, column w is at (c*Height+h)*Width+w.
type Datum struct {
	Channels int32
	Height   int32
	Width    int32
	Data     []byte
	Label    int32
	Encoded  bool
}

// NewDatum allocates a zeroed datum for the given shape
func NewDatum(channels, height, width int, label int32) *Datum {
	return &Datum{
		Channels: int32(channels),
		Height:   int32(height),
		Width:    int32(width),
		Data:     make([]byte, channels*height*width),
		Label:    label,
	}
}

// Size is the number of bytes the shape requires
func (d *Datum) Size() int {
	return int(d.Channels) * int(d.Height) * int(d.Width)
}

// Index returns the position of (c, h, w) in Data
func (d *Datum) Index(c, h, w int) int {
	return (c*int(d.Height)+h)*int(d.Width) + w
}

// Plane returns the Height*Width slice holding channel c
func (d *Datum) Plane(c int) []byte {
	n := int(d.Height) * int(d.Width)
	return d.Data[c*n : (c+1)*n]
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	// int32 is sign extended on the wire
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// Marshal serializes the datum into its protobuf wire form
func Marshal(d *Datum) []byte {
	// four int32 fields take at most 11 bytes each with their tags
	b := make([]byte, 0, protowire.SizeTag(fieldData)+protowire.SizeBytes(len(d.Data))+4*11+2)
	b = appendInt32(b, fieldChannels, d.Channels)
	b = appendInt32(b, fieldHeight, d.Height)
	b = appendInt32(b, fieldWidth, d.Width)
	b = protowire.AppendTag(b, fieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, d.Data)
	b = appendInt32(b, fieldLabel, d.Label)
	b = protowire.AppendTag(b, fieldEncoded, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(d.Encoded))
	return b
}

// Unmarshal parses the wire form. Unknown fields (float_data=6 among them) are skipped.
func Unmarshal(b []byte) (*Datum, error) {
	d := &Datum{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "datum: bad tag")
		}
		b = b[n:]
		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "datum: field %d", num)
			}
			b = b[n:]
			switch num {
			case fieldChannels:
				d.Channels = int32(v)
			case fieldHeight:
				d.Height = int32(v)
			case fieldWidth:
				d.Width = int32(v)
			case fieldLabel:
				d.Label = int32(v)
			case fieldEncoded:
				d.Encoded = protowire.DecodeBool(v)
			}
		case num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "datum: data")
			}
			d.Data = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "datum: field %d", num)
			}
			b = b[n:]
		}
	}
	if !d.Encoded && len(d.Data) != d.Size() {
		return nil, errors.Errorf("datum: data length %d does not match shape %dx%dx%d",
			len(d.Data), d.Channels, d.Height, d.Width)
	}
	return d, nil
}
