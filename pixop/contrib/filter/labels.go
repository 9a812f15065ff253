// Copyright 2025 go-highway Authors
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

package filter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Undo label keys. English is the key itself.
const (
	labelColorize = "Colorize"
	labelEqualize = "Equalize"
)

// supported lists the label languages; the first one is the fallback.
var supported = []language.Tag{language.English, language.German, language.French}

var (
	labelMatcher = language.NewMatcher(supported)
	labelCatalog = newLabelCatalog()
)

func newLabelCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range []struct {
		tag      language.Tag
		key, msg string
	}{
		{language.English, labelColorize, "Colorize"},
		{language.English, labelEqualize, "Equalize"},
		{language.German, labelColorize, "Einfärben"},
		{language.German, labelEqualize, "Angleichen"},
		{language.French, labelColorize, "Colorier"},
		{language.French, labelEqualize, "Égaliser"},
	} {
		if err := b.SetString(e.tag, e.key, e.msg); err != nil {
			panic(err)
		}
	}
	return b
}

// undoLabel returns the undo description for key in the language closest
// to tag.
func undoLabel(tag language.Tag, key string) string {
	_, i, _ := labelMatcher.Match(tag)
	p := message.NewPrinter(supported[i], message.Catalog(labelCatalog))
	return p.Sprintf(key)
}
