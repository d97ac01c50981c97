package letterbox

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Quit stops App.Run after the current frame.
func (cmd *Commands) Quit() {
	cmd.app.quit = true
}

func (cmd *Commands) Frame() uint64 {
	return cmd.app.frame
}
