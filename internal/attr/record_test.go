package attr

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// handRecord lays out a name/objtype/fileid record byte by byte, independent of Append.
func handRecord(name string, objType uint32, fileID uint64) []byte {
	const common = CmnReturnedAttrs | CmnName | CmnObjType | CmnFileID
	buf := make([]byte, 64)
	le := binary.NativeEndian
	le.PutUint32(buf[4:], common)
	// name slot at 24, objtype at 32, fileid at 36, name data at 44
	le.PutUint32(buf[24:], 44-24)
	le.PutUint32(buf[28:], uint32(len(name)+1))
	le.PutUint32(buf[32:], objType)
	le.PutUint64(buf[36:], fileID)
	copy(buf[44:], name)
	n := 44 + len(name) + 1
	n = (n + 7) &^ 7
	le.PutUint32(buf[0:], uint32(n))
	return buf[:n]
}

func TestDecode_HandBuiltRecord(t *testing.T) {
	buf := handRecord("hello.txt", VREG, 4242)

	r, n, err := Decode(buf, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(buf) {
		t.Errorf("advance = %d, want %d", n, len(buf))
	}
	if string(r.Name) != "hello.txt" {
		t.Errorf("name = %q, want %q", r.Name, "hello.txt")
	}
	if r.ObjType != VREG {
		t.Errorf("objtype = %d, want %d", r.ObjType, VREG)
	}
	if r.FileID != 4242 {
		t.Errorf("fileid = %d, want 4242", r.FileID)
	}
	if r.Failed() || r.IsPseudo() {
		t.Errorf("Failed=%v IsPseudo=%v, want both false", r.Failed(), r.IsPseudo())
	}
}

func TestDecode_FieldsGatedByReturnedBits(t *testing.T) {
	tests := []struct {
		name   string
		common uint32
		want   Record
	}{
		{
			name:   "all fields",
			common: RequestedCommon,
			want:   Record{Name: []byte("a"), Errno: 13, ObjType: VDIR, FileID: 7},
		},
		{
			name:   "no error slot",
			common: CmnReturnedAttrs | CmnName | CmnObjType | CmnFileID,
			want:   Record{Name: []byte("a"), ObjType: VDIR, FileID: 7},
		},
		{
			name:   "no object type",
			common: CmnReturnedAttrs | CmnName | CmnFileID,
			want:   Record{Name: []byte("a"), FileID: 7},
		},
		{
			name:   "name only",
			common: CmnReturnedAttrs | CmnName,
			want:   Record{Name: []byte("a")},
		},
		{
			name:   "nothing returned",
			common: CmnReturnedAttrs,
			want:   Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Record{
				Returned: AttributeSet{Common: tt.common},
				Name:     []byte("a"),
				Errno:    13,
				ObjType:  VDIR,
				FileID:   7,
			}
			buf := Append(nil, &in)

			got, n, err := Decode(buf, 0)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if n != len(buf) {
				t.Errorf("advance = %d, want %d", n, len(buf))
			}
			tt.want.Length = uint32(len(buf))
			tt.want.Returned = AttributeSet{Common: tt.common}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Sequence(t *testing.T) {
	names := []string{".", "..", "alpha", "beta", "a-much-longer-name-than-the-others.data"}
	var buf []byte
	for i, name := range names {
		buf = Append(buf, &Record{
			Returned: AttributeSet{Common: CmnReturnedAttrs | CmnName | CmnObjType | CmnFileID},
			Name:     []byte(name),
			ObjType:  VREG,
			FileID:   uint64(i + 1),
		})
	}
	// Trailing garbage past the last record must not be touched.
	buf = append(buf, 0xde, 0xad)

	var got []string
	off := 0
	for range names {
		r, n, err := Decode(buf, off)
		if err != nil {
			t.Fatalf("Decode at %d: %v", off, err)
		}
		if !r.IsPseudo() {
			got = append(got, string(r.Name))
		}
		off += n
	}
	want := []string{"alpha", "beta", "a-much-longer-name-than-the-others.data"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_IsPseudo(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".", true},
		{"..", true},
		{"...", false},
		{".hidden", false},
		{"a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Returned: AttributeSet{Common: CmnName}, Name: []byte(tt.name)}
			if got := r.IsPseudo(); got != tt.want {
				t.Errorf("IsPseudo(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRecord_Failed(t *testing.T) {
	tests := []struct {
		name   string
		common uint32
		errno  uint32
		want   bool
	}{
		{"error returned non-zero", CmnError, 13, true},
		{"error returned zero", CmnError, 0, false},
		{"error not returned", 0, 13, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Returned: AttributeSet{Common: tt.common}, Errno: tt.errno}
			if got := r.Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode_BoundsErrors(t *testing.T) {
	le := binary.NativeEndian
	valid := handRecord("file", VREG, 1)

	tests := []struct {
		name  string
		buf   func() []byte
		off   int
		field string
	}{
		{
			name:  "header truncated",
			buf:   func() []byte { return valid[:10] },
			field: "header",
		},
		{
			name:  "offset past end",
			buf:   func() []byte { return valid },
			off:   len(valid),
			field: "header",
		},
		{
			name: "length past end",
			buf: func() []byte {
				b := append([]byte(nil), valid...)
				le.PutUint32(b, uint32(len(b)+8))
				return b
			},
			field: "length",
		},
		{
			name: "length shorter than header",
			buf: func() []byte {
				b := append([]byte(nil), valid...)
				le.PutUint32(b, 8)
				return b
			},
			field: "length",
		},
		{
			name: "zero length",
			buf: func() []byte {
				b := append([]byte(nil), valid...)
				le.PutUint32(b, 0)
				return b
			},
			field: "length",
		},
		{
			name: "declared length cuts file id",
			buf: func() []byte {
				// header 24, objtype 24..28, file id 28..36
				b := Append(nil, &Record{
					Returned: AttributeSet{Common: CmnReturnedAttrs | CmnObjType | CmnFileID},
					ObjType:  VREG,
					FileID:   9,
				})
				le.PutUint32(b, 32)
				return b
			},
			field: "file id",
		},
		{
			name: "name data past record end",
			buf: func() []byte {
				b := append([]byte(nil), valid...)
				le.PutUint32(b[28:], 200)
				return b
			},
			field: "name",
		},
		{
			name: "negative name offset",
			buf: func() []byte {
				b := append([]byte(nil), valid...)
				le.PutUint32(b[24:], 0xfffffff0)
				return b
			},
			field: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.buf(), tt.off)
			if err == nil {
				t.Fatal("expected bounds error, got nil")
			}
			if !errors.Is(err, ErrBounds) {
				t.Errorf("error %v does not wrap ErrBounds", err)
			}
			var be *BoundsError
			if !errors.As(err, &be) {
				t.Fatalf("error %T is not *BoundsError", err)
			}
			if be.Field != tt.field {
				t.Errorf("field = %q, want %q", be.Field, tt.field)
			}
		})
	}
}

func TestAppend_AlignsRecords(t *testing.T) {
	for _, name := range []string{"a", "ab", "abcdefg", "abcdefgh"} {
		r := Record{Returned: AttributeSet{Common: RequestedCommon}, Name: []byte(name)}
		buf := Append(nil, &r)
		if len(buf)%recordAlign != 0 {
			t.Errorf("record for %q is %d bytes, not %d-aligned", name, len(buf), recordAlign)
		}
		if len(buf) != EncodedLen(&r) {
			t.Errorf("Append wrote %d bytes, EncodedLen says %d", len(buf), EncodedLen(&r))
		}
	}
}
