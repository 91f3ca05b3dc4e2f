package render

// StudyDecorators returns the canvas decorations of the trigger study:
// the legend box below the curves, the CMS labels and the axis style.
func StudyDecorators() []Decorator {
	const (
		legendX1, legendX2 = 0.3294533, 0.574162
		legendY1, legendY2 = 0.1676385, 0.2959184
	)
	return []Decorator{
		Legend(LegendOptions{
			XPos:        (legendX2-legendX1)/2 + legendX1,
			YPos:        (legendY2-legendY1)/2 + legendY1,
			LabelWidth:  legendX2 - legendX1,
			LabelHeight: 0.035,
			TextSize:    0.028,
			TextFont:    42,
		}),
		TextBox(TextBoxOptions{X: 0.6137566, Y: 0.3793003, Text: "CMS", Font: 61, Size: 0.06122449}),
		TextBox(TextBoxOptions{X: 0.617284, Y: 0.3355685, Text: "Simulation Preliminary", Font: 52, Size: 0.0451895}),
		TextBox(TextBoxOptions{X: 0.9, Y: 0.92, Text: " 2015, 13 TeV", Font: 42, Size: 0.06, Align: 31}),
		AxisStyle(AxisOptions{
			LabelFont:    42,
			LabelSize:    0.035,
			TitleFont:    42,
			TitleSize:    0.035,
			XTitleOffset: 1.4,
			YTitleOffset: 1.0,
		}),
	}
}
