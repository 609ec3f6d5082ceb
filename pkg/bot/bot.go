package bot

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"thumbgen/pkg/export"
	"thumbgen/pkg/params"
	"thumbgen/pkg/session"
)

const historySize = 3

// Factory creates the session of a new chat, identified by id.
type Factory func(id string, logger *zap.Logger) *session.Session

func NewBot(token string, factory Factory, logger *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:     b,
		chats: newChats(factory, logger),
		log:   logger,
	}, nil
}

type Bot struct {
	b     *tele.Bot
	chats *chats
	log   *zap.Logger
}

func (b *Bot) handleUpload() {
	b.b.Handle(tele.OnPhoto, func(context tele.Context) error {
		return b.load(context, &context.Message().Photo.File)
	})

	b.b.Handle(tele.OnDocument, func(context tele.Context) error {
		doc := context.Message().Document
		if !strings.HasPrefix(doc.MIME, "image/") {
			return context.Reply("Send an image to use as background")
		}
		return b.load(context, &doc.File)
	})
}

func (b *Bot) load(context tele.Context, file *tele.File) error {
	rc, err := b.b.File(file)
	if err != nil {
		return context.Reply(fmt.Sprintf("download failed: %s", err))
	}
	defer func() {
		_ = rc.Close()
	}()

	bs, err := io.ReadAll(rc)
	if err != nil {
		return context.Reply(fmt.Sprintf("download failed: %s", err))
	}

	c := b.chats.get(context.Chat().ID)
	if err := c.upload(bs); err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		c.log.With(zap.Error(err)).Info("upload rejected")
		return context.Reply(fmt.Sprintf("Could not read this image: %s", err))
	}

	return b.sendPreview(context, c)
}

func (b *Bot) handleBack() {
	b.b.Handle("/back", func(context tele.Context) error {
		c := b.chats.get(context.Chat().ID)
		err := c.back()
		switch {
		case errors.Is(err, errNoHistory):
			return context.Reply("No earlier background")
		case errors.Is(err, session.ErrSuperseded):
			return nil
		case err != nil:
			return context.Reply(fmt.Sprintf("restore failed: %s", err))
		}
		return b.sendPreview(context, c)
	})
}

func (b *Bot) handleParams() {
	update := func(context tele.Context, fn func(p *params.Params) error) error {
		c := b.chats.get(context.Chat().ID)
		if err := c.s.Update(fn); err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}
		return context.Reply("OK")
	}

	b.b.Handle("/set", func(context tele.Context) error {
		key, value, err := parseSet(context.Message().Payload)
		if err != nil {
			return context.Reply(err.Error())
		}
		return update(context, func(p *params.Params) error {
			return params.Set(p, key, value)
		})
	})

	b.b.Handle("/title", func(context tele.Context) error {
		return update(context, func(p *params.Params) error {
			p.Title = context.Message().Payload
			return nil
		})
	})

	b.b.Handle("/subtitle", func(context tele.Context) error {
		return update(context, func(p *params.Params) error {
			p.Subtitle = context.Message().Payload
			return nil
		})
	})

	b.b.Handle("/reset", func(context tele.Context) error {
		c := b.chats.get(context.Chat().ID)
		if err := c.s.Reset(); err != nil {
			return context.Reply(fmt.Sprintf("reset failed: %s", err))
		}
		return context.Reply("OK")
	})

	b.b.Handle("/params", func(context tele.Context) error {
		p := b.chats.get(context.Chat().ID).s.Params()
		return context.Reply(strings.Join(p.Lines(), "\n"))
	})

	b.b.Handle("/keys", func(context tele.Context) error {
		return context.Reply(strings.Join(params.Keys(), "\n"))
	})

	b.b.Handle("/fonts", func(context tele.Context) error {
		names := lo.Map(params.Fonts, func(f params.Font, _ int) string {
			return string(f)
		})
		return context.Reply(strings.Join(names, "\n"))
	})
}

func (b *Bot) handleOutput() {
	b.b.Handle("/preview", func(context tele.Context) error {
		return b.sendPreview(context, b.chats.get(context.Chat().ID))
	})

	b.b.Handle("/export", func(context tele.Context) error {
		c := b.chats.get(context.Chat().ID)
		bs, err := c.s.Export()
		if err != nil {
			if errors.Is(err, session.ErrNoImage) {
				return context.Reply("Send an image first")
			}
			return context.Reply(fmt.Sprintf("export failed: %s", err))
		}

		c.log.With(zap.String("size", export.Size(bs))).Info("exported")
		return context.Send(&tele.Document{
			File:     tele.FromReader(bytes.NewReader(bs)),
			FileName: export.FileName,
			MIME:     "image/png",
			Caption:  export.Size(bs),
		})
	})
}

func (b *Bot) sendPreview(context tele.Context, c *chat) error {
	bs, err := c.s.Export()
	if err != nil {
		if errors.Is(err, session.ErrNoImage) {
			return context.Reply("Send an image first")
		}
		return context.Reply(fmt.Sprintf("preview failed: %s", err))
	}

	return context.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(bs))})
}

func (b *Bot) Start() {
	b.handleUpload()
	b.handleBack()
	b.handleParams()
	b.handleOutput()
	go b.b.Start()
	b.log.With(zap.String("username", b.b.Me.Username)).Info("bot started")
}

func (b *Bot) Stop() {
	go b.b.Stop()
}

// parseSet splits a "/set" payload into the parameter key and its value.
func parseSet(payload string) (string, string, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(payload), " ")
	if !ok || key == "" {
		return "", "", errors.New("usage: /set <key> <value>, see /keys")
	}
	return key, strings.TrimSpace(value), nil
}

func newChats(factory Factory, logger *zap.Logger) *chats {
	return &chats{factory: factory, log: logger, items: make(map[int64]*chat)}
}

type chats struct {
	sync.Mutex
	factory Factory
	log     *zap.Logger
	items   map[int64]*chat
}

type chat struct {
	id  xid.ID
	s   *session.Session
	h   *history
	log *zap.Logger
}

// upload makes bs the chat background and records it in the history.
// Uploads superseded by a later one are not recorded.
func (c *chat) upload(bs []byte) error {
	if err := <-c.s.Load(bs); err != nil {
		return err
	}
	c.h.push(bs)
	return nil
}

// back restores the background uploaded before the current one.
func (c *chat) back() error {
	return c.h.back(func(bs []byte) error {
		return <-c.s.Load(bs)
	})
}

func (c *chats) get(chatID int64) *chat {
	c.Lock()
	defer c.Unlock()

	if ch, ok := c.items[chatID]; ok {
		return ch
	}

	id := xid.New()
	log := c.log.With(zap.Int64("chat", chatID), zap.String("session", id.String()))
	ch := &chat{id: id, s: c.factory(id.String(), log), h: newHistory(historySize), log: log}
	c.items[chatID] = ch

	log.Info("session started")
	return ch
}
