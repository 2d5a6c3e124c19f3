package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "shared",
			identifier:  "token123",
			paramsKey:   nil,
			expectedKey: "quizmoa:quiz:shared:token123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "shared",
			identifier:  "token123",
			paramsKey:   []string{},
			expectedKey: "quizmoa:quiz:shared:token123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "usage",
			objectType:  "daily",
			identifier:  "user1",
			paramsKey:   []string{"20251103"},
			expectedKey: "quizmoa:usage:daily:user1:20251103",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "anonymous",
			objectType:  "result",
			identifier:  "req1",
			paramsKey:   []string{"a", "b"},
			expectedKey: "quizmoa:anonymous:result:req1:a_b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.expectedKey)
			}
		})
	}
}
