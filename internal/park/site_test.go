package park

import "testing"

func TestSiteInfo(t *testing.T) {
	tests := []struct {
		name string
		site Site
		want string
	}{
		{
			name: "national park",
			site: NewSite("National Park", "Isle Royale", "Houghton, MI", "49931", "(906) 482-0984"),
			want: "Isle Royale (National Park): Houghton, MI 49931",
		},
		{
			name: "blank category",
			site: NewSite("", "Motor Cities", "Detroit, MI", "48243", "313-259-3425"),
			want: "Motor Cities (): Detroit, MI 48243",
		},
		{
			name: "zip plus four",
			site: NewSite("National Park", "Yellowstone", "Yellowstone National Park, WY", "82190-0168", "307-344-7381"),
			want: "Yellowstone (National Park): Yellowstone National Park, WY 82190-0168",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.site.Info(); got != tt.want {
				t.Errorf("Info() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSite(t *testing.T) {
	s := NewSite("National Lakeshore", "Sleeping Bear Dunes", "Empire, MI", "49630", "(231) 326-4700")

	if s.Category != "National Lakeshore" || s.Name != "Sleeping Bear Dunes" ||
		s.Address != "Empire, MI" || s.Zipcode != "49630" || s.Phone != "(231) 326-4700" {
		t.Errorf("NewSite() = %+v, fields not assigned in order", s)
	}
}
