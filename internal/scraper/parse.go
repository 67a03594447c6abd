package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/PuerkitoBio/goquery"
	"github.com/user/actorhub/internal/model"
)

// 榜单页结构（IMDb list 页面的 lister 布局）
const (
	entrySelector   = "div.lister-item.mode-detail"
	nameSelector    = "h3 a"
	rankSelector    = "span.lister-item-index"
	typeSelector    = "p.text-muted.text-small"
	detailsSelector = "div.list-description p"
)

// ParseListing 从榜单页解析演员列表，每个条目要么完整解析，要么整体跳过
func ParseListing(doc *goquery.Document, source string, logger lager.Logger) []model.Actor {
	entries := doc.Find(entrySelector)
	actors := make([]model.Actor, 0, entries.Length())

	entries.Each(func(i int, s *goquery.Selection) {
		if actor, ok := parseEntry(s, i+1, source, logger); ok {
			actors = append(actors, actor)
		}
	})

	logger.Info("parsed-listing", lager.Data{
		"entries": entries.Length(),
		"parsed":  len(actors),
		"skipped": entries.Length() - len(actors),
	})
	return actors
}

func parseEntry(s *goquery.Selection, index int, source string, logger lager.Logger) (actor model.Actor, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("parse-entry-failed", fmt.Errorf("%v", r), lager.Data{"index": index})
			actor, ok = model.Actor{}, false
		}
	}()

	name := strings.TrimSpace(s.Find(nameSelector).First().Text())
	if name == "" {
		logger.Info("skip-entry", lager.Data{"index": index, "reason": "missing-name"})
		return model.Actor{}, false
	}

	rawRank := s.Find(rankSelector).First().Text()
	rank, err := parseRank(rawRank)
	if err != nil {
		logger.Info("skip-entry", lager.Data{
			"index":  index,
			"reason": "invalid-rank",
			"name":   name,
			"raw":    strings.TrimSpace(rawRank),
		})
		return model.Actor{}, false
	}

	return model.Actor{
		Name:    name,
		Rank:    rank,
		Type:    extractType(s.Find(typeSelector).First().Text()),
		Details: extractDetails(s),
		Source:  source,
	}, true
}

// extractDetails 取简介文本，实体（&eacute; 等）在解析 HTML 时已解码
var extractDetails = func(s *goquery.Selection) string {
	return strings.TrimSpace(s.Find(detailsSelector).First().Text())
}

// parseRank 取 "." 之前的数字，例如 "4." => 4
func parseRank(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("排名为空")
	}
	head, _, _ := strings.Cut(text, ".")
	rank, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("排名不是数字: %q", text)
	}
	if rank <= 0 {
		return 0, fmt.Errorf("排名必须大于 0: %d", rank)
	}
	return rank, nil
}

// extractType 取 "|" 之前的第一段，例如 "Actor | Scarface" => "Actor"
func extractType(raw string) string {
	first, _, _ := strings.Cut(raw, "|")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return model.UnknownType
}
