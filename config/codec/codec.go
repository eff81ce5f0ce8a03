// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package codec registers the encoders and decoders used for configuration
// files, batch request files and command output.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Type identifies an encoding.
type Type string

// Encoder converts Go values into encoded bytes.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded bytes into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Codec is both an Encoder and a Decoder.
type Codec interface {
	Encoder
	Decoder
}

var registry = struct {
	sync.RWMutex
	codecs map[Type]Codec
}{codecs: make(map[Type]Codec)}

// Register makes c available under name, replacing any previous codec.
func Register(name Type, c Codec) {
	registry.Lock()
	defer registry.Unlock()
	registry.codecs[name] = c
}

// Get returns the codec registered under name.
func Get(name Type) (Codec, error) {
	registry.RLock()
	defer registry.RUnlock()
	c, ok := registry.codecs[name]
	if !ok {
		return nil, fmt.Errorf("codec not found for type: %s", name)
	}
	return c, nil
}

// Types returns the registered codec names.
func Types() []Type {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Type, 0, len(registry.codecs))
	for t := range registry.codecs {
		out = append(out, t)
	}
	return out
}

// TypeFromPath infers the codec type from a file extension.
func TypeFromPath(path string) (Type, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return TypeYAML, nil
	case ".toml":
		return TypeTOML, nil
	case ".json":
		return TypeJSON, nil
	default:
		return "", fmt.Errorf("cannot infer encoding from extension %q", ext)
	}
}
