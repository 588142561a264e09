package screen

import "time"

// CarouselInterval is the auto-advance period.
const CarouselInterval = 3 * time.Second

// Slide is one promotional card on the dashboard.
type Slide struct {
	Caption string
	URL     string
}

const promoURL = "https://www.vgnhomes.org/"

// DefaultSlides is the fixed promotional set.
var DefaultSlides = []Slide{
	{Caption: "VGN Aspire Gardens", URL: promoURL},
	{Caption: "VGN Heritage Springz", URL: promoURL},
	{Caption: "VGN Highland", URL: promoURL},
	{Caption: "VGN Pride De Villa", URL: promoURL},
	{Caption: "VGN Grandeur", URL: promoURL},
	{Caption: "VGN Paradise", URL: promoURL},
}

// Carousel cycles through slides. Manual moves do not reset the timer.
type Carousel struct {
	slides []Slide
	index  int
}

// NewCarousel returns a carousel positioned on the first slide.
func NewCarousel(slides []Slide) *Carousel {
	return &Carousel{slides: slides}
}

func (c *Carousel) Len() int   { return len(c.slides) }
func (c *Carousel) Index() int { return c.index }

// Current returns the active slide. ok is false for an empty carousel.
func (c *Carousel) Current() (Slide, bool) {
	if len(c.slides) == 0 {
		return Slide{}, false
	}
	return c.slides[c.index], true
}

// Tick advances one slide, wrapping past the end.
func (c *Carousel) Tick() {
	if len(c.slides) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.slides)
}

// Prev moves back one slide, wrapping past the start.
func (c *Carousel) Prev() {
	if len(c.slides) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.slides)) % len(c.slides)
}

// Jump selects slide i if it exists.
func (c *Carousel) Jump(i int) {
	if i >= 0 && i < len(c.slides) {
		c.index = i
	}
}
