package endpoints

// Endpoints groups the endpoints served by the HTTP session view.
type Endpoints struct {
	SessionEndpoint SessionEndpoint
}
