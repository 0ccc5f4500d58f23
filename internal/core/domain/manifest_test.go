package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validDigest = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func validManifest() RemoteManifest {
	return RemoteManifest{
		Plugins: map[string]PluginDescriptor{
			"demo": {
				File:        "plugins/demo.py",
				Author:      "A",
				Description: "D",
				Version:     "1.0.0",
				SHA256:      validDigest,
			},
		},
	}
}

func TestRemoteManifest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(m *RemoteManifest)
		expectError bool
	}{
		{
			name:        "ValidManifest_ShouldPass",
			mutate:      func(m *RemoteManifest) {},
			expectError: false,
		},
		{
			name: "EmptyManifest_ShouldPass",
			mutate: func(m *RemoteManifest) {
				m.Plugins = map[string]PluginDescriptor{}
			},
			expectError: false,
		},
		{
			name: "WhitespaceName_ShouldFail",
			mutate: func(m *RemoteManifest) {
				m.Plugins["  "] = m.Plugins["demo"]
			},
			expectError: true,
		},
		{
			name: "MissingFile_ShouldFail",
			mutate: func(m *RemoteManifest) {
				d := m.Plugins["demo"]
				d.File = ""
				m.Plugins["demo"] = d
			},
			expectError: true,
		},
		{
			name: "MissingVersion_ShouldFail",
			mutate: func(m *RemoteManifest) {
				d := m.Plugins["demo"]
				d.Version = ""
				m.Plugins["demo"] = d
			},
			expectError: true,
		},
		{
			name: "ShortDigest_ShouldFail",
			mutate: func(m *RemoteManifest) {
				d := m.Plugins["demo"]
				d.SHA256 = "abc123"
				m.Plugins["demo"] = d
			},
			expectError: true,
		},
		{
			name: "UppercaseDigest_ShouldFail",
			mutate: func(m *RemoteManifest) {
				d := m.Plugins["demo"]
				d.SHA256 = "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"
				m.Plugins["demo"] = d
			},
			expectError: true,
		},
		{
			name: "NonHexDigest_ShouldFail",
			mutate: func(m *RemoteManifest) {
				d := m.Plugins["demo"]
				d.SHA256 = "zz" + validDigest[2:]
				m.Plugins["demo"] = d
			},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := validManifest()
			tc.mutate(&m)

			err := m.Validate()
			if tc.expectError {
				assert.Error(t, err)
				var parseErr *ParseError
				assert.ErrorAs(t, err, &parseErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRemoteManifest_Search(t *testing.T) {
	m := RemoteManifest{
		Plugins: map[string]PluginDescriptor{
			"calculator": {Description: "Simple math helper", Version: "1.0", File: "f", SHA256: validDigest},
			"weather":    {Description: "Shows the forecast", Version: "1.0", File: "f", SHA256: validDigest},
		},
	}

	assert.Len(t, m.Search("CALC"), 1)
	assert.Len(t, m.Search("forecast"), 1)
	assert.Len(t, m.Search(""), 2)
	assert.Empty(t, m.Search("nomatch"))
}

func TestRemoteManifest_Names_Sorted(t *testing.T) {
	m := RemoteManifest{
		Plugins: map[string]PluginDescriptor{
			"zeta": {}, "alpha": {}, "mid": {},
		},
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.Names())
}

func TestIsDigest(t *testing.T) {
	assert.True(t, IsDigest(validDigest))
	assert.False(t, IsDigest(""))
	assert.False(t, IsDigest(validDigest[:63]))
	assert.False(t, IsDigest(validDigest+"0"))
	assert.False(t, IsDigest("g"+validDigest[1:]))
}
