package imscc

import (
	"time"

	"github.com/kalebabebe/mitx-canvas-tools/ir"
)

// Course is the concrete course tree produced by BuildCourse. It implements
// ir.Course and is held in memory only for the duration of one conversion.
type Course struct {
	DisplayName      string
	Org              string
	CourseCode       string
	Run              string
	Language         string
	StartDate        *time.Time
	EndDate          *time.Time
	ExtraAttributes  map[string]string
	Chapters         []*Chapter
	Grading          []ir.GradingCategory
	UnsupportedItems []ir.UnsupportedItem
	FrontPageHTML    string
}

func (c *Course) GetDisplayName() string { return c.DisplayName }
func (c *Course) GetOrgName() string { return c.Org }
func (c *Course) GetCourseCode() string { return c.CourseCode }
func (c *Course) GetRunName() string { return c.Run }
func (c *Course) GetLanguage() string { return c.Language }
func (c *Course) GetStartDate() *time.Time { return c.StartDate }
func (c *Course) GetEndDate() *time.Time { return c.EndDate }
func (c *Course) GetExtraAttributes() map[string]string { return c.ExtraAttributes }
func (c *Course) GetGradingCategories() []ir.GradingCategory { return c.Grading }
func (c *Course) GetUnsupportedItems() []ir.UnsupportedItem { return c.UnsupportedItems }
func (c *Course) GetFrontPageHTML() string { return c.FrontPageHTML }

func (c *Course) GetChapters() []ir.Chapter {
	chapters := make([]ir.Chapter, 0, len(c.Chapters))
	for _, chap := range c.Chapters {
		chapters = append(chapters, chap)
	}
	return chapters
}

type Chapter struct {
	DisplayName     string
	URLName         string
	IsPublished     bool
	ExtraAttributes map[string]string
	Sequentials     []*Sequential
}

func (c *Chapter) GetDisplayName() string { return c.DisplayName }
func (c *Chapter) GetURLName() string { return c.URLName }
func (c *Chapter) GetIsPublished() bool { return c.IsPublished }
func (c *Chapter) GetExtraAttributes() map[string]string { return c.ExtraAttributes }

func (c *Chapter) GetSequentials() []ir.Sequential {
	seqs := make([]ir.Sequential, 0, len(c.Sequentials))
	for _, s := range c.Sequentials {
		seqs = append(seqs, s)
	}
	return seqs
}

type Sequential struct {
	DisplayName     string
	URLName         string
	IsPublished     bool
	Prereq          string
	ExtraAttributes map[string]string
	Verticals       []*Vertical
}

func (s *Sequential) GetDisplayName() string { return s.DisplayName }
func (s *Sequential) GetURLName() string { return s.URLName }
func (s *Sequential) GetIsPublished() bool { return s.IsPublished }
func (s *Sequential) GetPrereq() string { return s.Prereq }
func (s *Sequential) GetExtraAttributes() map[string]string { return s.ExtraAttributes }

func (s *Sequential) GetVerticals() []ir.Vertical {
	verts := make([]ir.Vertical, 0, len(s.Verticals))
	for _, v := range s.Verticals {
		verts = append(verts, v)
	}
	return verts
}

type Vertical struct {
	DisplayName     string
	URLName         string
	ExtraAttributes map[string]string
	Blocks          []*Block
}

func (v *Vertical) GetDisplayName() string { return v.DisplayName }
func (v *Vertical) GetURLName() string { return v.URLName }
func (v *Vertical) GetExtraAttributes() map[string]string { return v.ExtraAttributes }

func (v *Vertical) GetBlocks() []ir.Block {
	blocks := make([]ir.Block, 0, len(v.Blocks))
	for _, b := range v.Blocks {
		blocks = append(blocks, b)
	}
	return blocks
}

type Block struct {
	DisplayName     string
	URLName         string
	BlockType       string
	Content         string
	ExtraAttributes map[string]string
}

func (b *Block) GetDisplayName() string { return b.DisplayName }
func (b *Block) GetURLName() string { return b.URLName }
func (b *Block) GetBlockType() string { return b.BlockType }
func (b *Block) GetContent() string { return b.Content }
func (b *Block) GetExtraAttributes() map[string]string { return b.ExtraAttributes }
