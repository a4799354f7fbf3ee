package blobstore

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://receipts/images/abc.jpg", "receipts", "images/abc.jpg", false},
		{"gs://receipts/abc.jpg", "receipts", "abc.jpg", false},
		{"gs://receipts", "", "", true},
		{"gs://receipts/", "", "", true},
		{"https://example.com/abc.jpg", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := parseURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("parseURI(%q) = (%q, %q), want (%q, %q)", tt.uri, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
