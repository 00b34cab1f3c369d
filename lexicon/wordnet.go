// Copyright 2026 Ian Lewis
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

package lexicon

import (
	"regexp"
	"strings"

	"github.com/ianlewis/go-wordhunter/internal/folding"
)

var (
	// senseMarker matches the start of a WordNet sense: "n 1:", "adj 2:",
	// "v :" or a bare "3:" continuing the previous part of speech.
	senseMarker = regexp.MustCompile(`(?:^|\s)(?:(n|v|adj|adv)\s+(\d{1,2})?|(\d{1,2})):\s`)

	synList   = regexp.MustCompile(`\[syn:\s*([^\]]*)\]`)
	otherList = regexp.MustCompile(`\[(?:ant|also):\s*[^\]]*\]`)
	braced    = regexp.MustCompile(`\{([^}]*)\}`)
	quoted    = regexp.MustCompile(`"([^"]+)"`)
)

var partsOfSpeech = map[string]string{
	"n":   "noun",
	"v":   "verb",
	"adj": "adjective",
	"adv": "adverb",
}

// parseGloss splits WordNet style article text into senses and the synonyms
// listed in "[syn: {a}, {b}]" blocks. Text without sense markers becomes a
// single sense with no part of speech.
func parseGloss(text string) ([]Sense, []string) {
	text = folding.Space(text)
	if text == "" {
		return nil, nil
	}

	locs := senseMarker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		s, syns := parseSense(text)
		if s.Definition == "" {
			return nil, syns
		}
		return []Sense{s}, syns
	}

	var senses []Sense
	var synonyms []string
	pos := ""
	for i, loc := range locs {
		if loc[2] >= 0 {
			pos = partsOfSpeech[text[loc[2]:loc[3]]]
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		s, syns := parseSense(text[loc[1]:end])
		s.PartOfSpeech = pos
		synonyms = append(synonyms, syns...)
		if s.Definition != "" {
			senses = append(senses, s)
		}
	}
	return senses, synonyms
}

func parseSense(text string) (Sense, []string) {
	var syns []string
	for _, m := range synList.FindAllStringSubmatch(text, -1) {
		for _, b := range braced.FindAllStringSubmatch(m[1], -1) {
			if w := strings.TrimSpace(b[1]); w != "" {
				syns = append(syns, w)
			}
		}
	}
	text = synList.ReplaceAllString(text, "")
	text = otherList.ReplaceAllString(text, "")

	var examples []string
	for _, m := range quoted.FindAllStringSubmatch(text, -1) {
		examples = append(examples, strings.TrimSpace(m[1]))
	}
	text = quoted.ReplaceAllString(text, "")

	// Cross references are written as {word}; keep the word.
	text = braced.ReplaceAllString(text, "$1")

	def := strings.Trim(folding.Space(text), " ;,")
	return Sense{Definition: def, Examples: examples}, syns
}
