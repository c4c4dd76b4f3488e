package commsutil

// SubjectMethods is the default COMMS subject the gateway serves method
// calls on.
const SubjectMethods = "gateway.methods.v1"
