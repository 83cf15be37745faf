package zlite

import (
	"log"
	"os"
	"strings"

	"github.com/glycerine/liner"
)

var completion_keywords = []string{`(`, `(define `, `(if `, `(+ `, `(= `, `(!= `, `true`, `false`, `quit`, `.env`, `.dump`, `.save `, `.load `}

type Prompter struct {
	prompt      string
	historyFile string
	prompter    *liner.State
}

func NewPrompter(prompt string, historyFile string) *Prompter {
	p := &Prompter{
		prompt:      prompt,
		historyFile: historyFile,
		prompter:    liner.NewLiner(),
	}

	p.prompter.SetCtrlCAborts(false)
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range completion_keywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			p.prompter.ReadHistory(f)
			f.Close()
		}
	}
	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if p.historyFile == "" {
		return
	}
	if f, err := os.Create(p.historyFile); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

func (p *Prompter) Getline() (line string, err error) {
	line, err = p.prompter.Prompt(p.prompt)
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
