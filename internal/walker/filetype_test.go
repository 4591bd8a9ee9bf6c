package walker

import "testing"

func TestFileTypeOf(t *testing.T) {
	tests := []struct {
		code uint32
		want FileType
	}{
		{0, Unknown},
		{1, RegularFile},
		{2, Directory},
		{3, BlockDevice},
		{4, CharDevice},
		{5, Symlink},
		{6, Socket},
		{7, Socket},
		{8, Unknown},
		{255, Unknown},
		{1 << 20, Unknown},
	}
	for _, tt := range tests {
		if got := fileTypeOf(tt.code); got != tt.want {
			t.Errorf("fileTypeOf(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestFileType_String(t *testing.T) {
	tests := []struct {
		typ  FileType
		want string
	}{
		{RegularFile, "regular_file"},
		{Directory, "directory"},
		{Symlink, "symlink"},
		{BlockDevice, "block_device"},
		{CharDevice, "char_device"},
		{Socket, "socket"},
		{Unknown, "unknown"},
		{FileType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
