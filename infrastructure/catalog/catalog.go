// Package catalog supplies the curated topic and channel reference
// data consumed by the allocation engine and the HTTP catalog routes.
// The data ships as a yaml file so deployments can localize it without
// a rebuild; a built-in Brazilian default applies when no file exists.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"merculy-backend/application/ports"
)

type topicEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Keywords string `yaml:"keywords"`
}

type channelEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
	Active bool   `yaml:"active"`
}

type catalogFile struct {
	Topics   []topicEntry   `yaml:"topics"`
	Channels []channelEntry `yaml:"channels"`
}

// Catalog implements ports.SourceCatalog over a yaml data file
type Catalog struct {
	topics    []ports.Topic
	channels  map[string]ports.Channel
	order     []string
	queryByID map[string]string
}

// Load reads a catalog file. A missing file falls back to the built-in
// default catalog; a malformed file is an error.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return fromFile(file), nil
}

// Default returns the built-in Brazilian catalog
func Default() *Catalog {
	return fromFile(defaultCatalog)
}

func fromFile(file catalogFile) *Catalog {
	c := &Catalog{
		topics:    make([]ports.Topic, 0, len(file.Topics)),
		channels:  make(map[string]ports.Channel, len(file.Channels)),
		order:     make([]string, 0, len(file.Channels)),
		queryByID: make(map[string]string, len(file.Topics)),
	}

	for _, t := range file.Topics {
		c.topics = append(c.topics, ports.Topic{ID: t.ID, Name: t.Name, Keywords: t.Keywords})
		c.queryByID[t.ID] = t.Keywords
	}
	for _, ch := range file.Channels {
		c.channels[ch.ID] = ports.Channel{ID: ch.ID, Name: ch.Name, Domain: ch.Domain, Active: ch.Active}
		c.order = append(c.order, ch.ID)
	}
	return c
}

// Topics lists the curated topics
func (c *Catalog) Topics() []ports.Topic {
	return append([]ports.Topic(nil), c.topics...)
}

// Channels lists the active channels in catalog order
func (c *Catalog) Channels() []ports.Channel {
	out := make([]ports.Channel, 0, len(c.order))
	for _, id := range c.order {
		ch := c.channels[id]
		if ch.Active {
			out = append(out, ch)
		}
	}
	return out
}

// ResolveChannels maps followed channel ids to active channels.
// Unknown and inactive ids are dropped silently.
func (c *Catalog) ResolveChannels(ids []string) []ports.Channel {
	out := make([]ports.Channel, 0, len(ids))
	for _, id := range ids {
		ch, ok := c.channels[id]
		if ok && ch.Active {
			out = append(out, ch)
		}
	}
	return out
}

// DefaultDomains returns every active channel domain in catalog order
func (c *Catalog) DefaultDomains() []string {
	out := make([]string, 0, len(c.order))
	for _, id := range c.order {
		ch := c.channels[id]
		if ch.Active {
			out = append(out, ch.Domain)
		}
	}
	return out
}

// QueryForTopic returns the provider search expression for a topic,
// falling back to the raw label for topics outside the catalog
func (c *Catalog) QueryForTopic(topic string) string {
	if q, ok := c.queryByID[topic]; ok && q != "" {
		return q
	}
	return topic
}

// defaultCatalog mirrors the curated Brazilian sources and the
// Portuguese topic keyword expressions the provider queries use
var defaultCatalog = catalogFile{
	Topics: []topicEntry{
		{ID: "tecnologia", Name: "Tecnologia", Keywords: "tecnologia OR inovação OR startups OR inteligência artificial"},
		{ID: "economia", Name: "Economia", Keywords: "economia OR mercado financeiro OR inflação OR juros"},
		{ID: "política", Name: "Política", Keywords: "política OR governo OR congresso OR eleições"},
		{ID: "esportes", Name: "Esportes", Keywords: "esportes OR futebol OR campeonato"},
		{ID: "saúde", Name: "Saúde", Keywords: "saúde OR medicina OR bem-estar"},
		{ID: "entretenimento", Name: "Entretenimento", Keywords: "entretenimento OR cinema OR música OR celebridades"},
		{ID: "ciência", Name: "Ciência", Keywords: "ciência OR pesquisa OR descoberta científica"},
		{ID: "negócios", Name: "Negócios", Keywords: "negócios OR empresas OR empreendedorismo"},
	},
	Channels: []channelEntry{
		{ID: "ch-g1", Name: "G1", Domain: "g1.globo.com", Active: true},
		{ID: "ch-folha", Name: "Folha de S.Paulo", Domain: "folha.uol.com.br", Active: true},
		{ID: "ch-estadao", Name: "Estadão", Domain: "estadao.com.br", Active: true},
		{ID: "ch-uol", Name: "UOL", Domain: "uol.com.br", Active: true},
		{ID: "ch-veja", Name: "Veja", Domain: "veja.abril.com.br", Active: true},
		{ID: "ch-exame", Name: "Exame", Domain: "exame.com", Active: true},
	},
}
