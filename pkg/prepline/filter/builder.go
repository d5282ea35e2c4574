package filter

import (
	"log"

	"github.com/textkit/prepline/pkg/prepline/config"
	"github.com/textkit/prepline/pkg/prepline/stopword"
	"github.com/textkit/prepline/pkg/prepline/synonym"
)

// Section is the settings section the builder reads its flags from.
const Section = "filter"

// Builder assembles a filter chain from configuration flags. Every enable
// flag is a required setting; resource files referenced by enabled steps
// must load cleanly or the whole build fails — no partial chain is
// returned.
type Builder struct {
	settings config.Settings
}

// NewBuilder creates a Builder over the given settings.
func NewBuilder(settings config.Settings) *Builder {
	return &Builder{settings: settings}
}

// Build reads the enable flags and returns the chain in canonical order.
// Disabled steps are skipped entirely, not inserted as no-ops.
func (b *Builder) Build() (*Chain, error) {
	var filters []Filter

	enabled, err := b.settings.GetBool("lower", Section)
	if err != nil {
		return nil, err
	}
	if enabled {
		log.Print("filter: converting to lower case")
		filters = append(filters, Lowercase())
	}

	if enabled, err = b.settings.GetBool("map_synonym", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: mapping synonyms")
		mapper, err := b.buildSynonymMapper()
		if err != nil {
			return nil, err
		}
		filters = append(filters, MapSynonyms(mapper))
	}

	if enabled, err = b.settings.GetBool("strip_punctuation", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: stripping punctuation")
		filters = append(filters, StripPunctuation())
	}

	if enabled, err = b.settings.GetBool("strip_multiple_whitespaces", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: stripping multiple whitespaces")
		filters = append(filters, CollapseWhitespace())
	}

	if enabled, err = b.settings.GetBool("strip_numeric", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: stripping numerics")
		filters = append(filters, StripNumeric())
	}

	if enabled, err = b.settings.GetBool("remove_stopwords", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: removing stopwords")
		set, err := b.buildStopwordSet()
		if err != nil {
			return nil, err
		}
		filters = append(filters, RemoveStopwords(set))
	}

	if enabled, err = b.settings.GetBool("strip_short", Section); err != nil {
		return nil, err
	} else if enabled {
		minSize, err := b.settings.GetInt("strip_short_minsize", Section)
		if err != nil {
			return nil, err
		}
		log.Printf("filter: stripping words shorter than %d", minSize)
		filters = append(filters, StripShort(minSize))
	}

	if enabled, err = b.settings.GetBool("lemmatize", Section); err != nil {
		return nil, err
	} else if enabled {
		log.Print("filter: lemmatizing text")
		filters = append(filters, Lemmatize())
	}

	return NewChain(filters...), nil
}

func (b *Builder) buildSynonymMapper() (*synonym.Mapper, error) {
	path, err := b.settings.GetString("synonym_map", Section)
	if err != nil {
		return nil, err
	}
	table, err := config.LoadSynonyms(path)
	if err != nil {
		return nil, err
	}
	return synonym.NewMapper(table)
}

// buildStopwordSet computes (base ∪ add) − remove. The base set is the
// built-in English list unless the optional stopwords_base key points at a
// YAML stoplist override.
func (b *Builder) buildStopwordSet() (stopword.Set, error) {
	base := stopword.Default()
	if basePath, err := b.settings.GetString("stopwords_base", Section); err == nil && basePath != "" {
		base, err = config.LoadStoplist(basePath)
		if err != nil {
			return nil, err
		}
	}

	addPath, err := b.settings.GetString("stopwords_to_add", Section)
	if err != nil {
		return nil, err
	}
	add, err := config.LoadWordList(addPath)
	if err != nil {
		return nil, err
	}

	removePath, err := b.settings.GetString("stopwords_to_remove", Section)
	if err != nil {
		return nil, err
	}
	remove, err := config.LoadWordList(removePath)
	if err != nil {
		return nil, err
	}

	return stopword.Build(base, add, remove), nil
}
