package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Create form: whole numbers with L, LTR, LTRS, KG or ML
	volumeRegex = regexp.MustCompile(`(?i)(\d+\s?(LTRS?|L|KG|ML))`)
	// Edit form also accepts decimals, fractions like 1/2 and loose unit spellings
	fractionalVolumeRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?(?:/\d+)?\s?(?:ltr?s?|kg?s?|ml))`)
)

// VolumeMatch is the result of pulling a package size out of a product name
type VolumeMatch struct {
	CleanedName string `json:"cleanedName"`
	Volume      string `json:"extractedVolume"`
}

// ExtractVolume finds the first volume token in a product name.
// Example: "Sunflower Oil 5L" -> {CleanedName: "Sunflower Oil", Volume: "5L"}
func ExtractVolume(name string) VolumeMatch {
	fullName := strings.TrimSpace(name)

	match := volumeRegex.FindString(fullName)
	if match == "" {
		return VolumeMatch{CleanedName: fullName}
	}

	return VolumeMatch{
		CleanedName: strings.TrimSpace(strings.Replace(fullName, match, "", 1)),
		Volume:      CompactUpper(match),
	}
}

// ExtractVolumeFractional is the edit form variant of ExtractVolume.
// It accepts "1/2 Ltr" or "2.5 kgs" and canonicalizes LTRS to LTR and KGS to KG.
func ExtractVolumeFractional(name string) VolumeMatch {
	fullName := strings.TrimSpace(name)

	match := fractionalVolumeRegex.FindString(fullName)
	if match == "" {
		return VolumeMatch{CleanedName: fullName}
	}

	volume := CompactUpper(match)
	volume = strings.Replace(volume, "LTRS", "LTR", 1)
	volume = strings.Replace(volume, "KGS", "KG", 1)

	return VolumeMatch{
		CleanedName: strings.TrimSpace(strings.Replace(fullName, match, "", 1)),
		Volume:      volume,
	}
}

// CompactUpper removes every whitespace rune and upper-cases the rest
func CompactUpper(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
